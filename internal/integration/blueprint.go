// Package integration exposes the static workflow-automation blueprint and
// mocked channel connection status. Real channel connectors are out of scope;
// everything served here is illustrative.
package integration

// Blueprint is the n8n workflow export patients copy into their own
// automation tool. It is a fixed document, not generated.
const Blueprint = `{
  "nodes": [
    { "type": "n8n-nodes-base.webhook", "name": "WhatsApp Input" },
    { "type": "n8n-nodes-base.googleGemini", "name": "AI Secretary" },
    { "type": "n8n-nodes-base.httpRequest", "name": "Update Dashboard" },
    { "type": "n8n-nodes-base.evolutionApi", "name": "Send WhatsApp" }
  ],
  "connections": { "Logic": "Flow sequence" }
}`

// ChannelStatus mirrors the dashboard's connection indicators. The values
// are static: no connector is actually wired.
type ChannelStatus struct {
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Email     string `json:"email"`
}

// Status returns the mocked connection state for every channel.
func Status() ChannelStatus {
	return ChannelStatus{
		WhatsApp:  "connected",
		Instagram: "connected",
		Email:     "disconnected",
	}
}
