package webchat

import _ "embed"

// WidgetJS is the embeddable patient chat widget served at /webchat/widget.js.
//
//go:embed widget.js
var WidgetJS []byte
