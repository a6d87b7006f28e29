// Package assets embeds static data shipped with the bot.
package assets

import _ "embed"

// Countries is the default country catalog in JSON form.
//
//go:embed countries.json
var Countries []byte
