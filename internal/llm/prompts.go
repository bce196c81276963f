package llm

import _ "embed"

//go:embed prompts/contract_v1.txt
var promptContractV1 string

// SystemPrompt returns the system instruction for the given version and
// whether the version was recognized. Unknown versions fall back to the
// current prompt.
func SystemPrompt(version string) (string, bool) {
	switch version {
	case "contract_v1":
		return promptContractV1, true
	default:
		return promptContractV1, false
	}
}
