// Package resources embeds canned API responses used by the mock API client
// and by tests.
package resources

import "embed"

const SAVED_LOCATIONS_RESPONSE_RESOURCE = "saved_locations_response.json"
const EVENTS_RESPONSE_RESOURCE = "events_response.json"
const SPEND_TOTAL_RESPONSE_RESOURCE = "spend_total_response.json"

//go:embed *.json
var FS embed.FS
