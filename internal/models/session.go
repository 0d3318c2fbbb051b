package models

import "github.com/ethereum/go-ethereum/common"

type ConnectionState string

const (
	ConnectionStateDisconnected ConnectionState = "disconnected"
	ConnectionStateConnecting   ConnectionState = "connecting"
	ConnectionStateConnected    ConnectionState = "connected"
)

// Session is a snapshot of the wallet session
type Session struct {
	AccountAddress  *common.Address `json:"account_address,omitempty"`
	ConnectionState ConnectionState `json:"connection_state"`
	ConnectorID     string          `json:"connector_id,omitempty"`
}

// IsConnected reports whether the session has an account ready to sign
func (s Session) IsConnected() bool {
	return s.ConnectionState == ConnectionStateConnected && s.AccountAddress != nil
}

// ConnectorInfo describes a wallet connector that can be chosen on connect
type ConnectorInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}
