package assets

import _ "embed"

//go:embed padkeys.ini
var DefaultIni []byte
