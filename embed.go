package beatbook

import "embed"

// EmailFS carries the html and plaintext email templates compiled into the
// binary.
//
//go:embed templates/emails
var EmailFS embed.FS
