// Package providers contains the concrete API adapters used by the
// generation service: OpenAI, Anthropic, and Gemini for text, DALL-E and
// Stability AI for images. Adapters are stateless; credentials arrive per
// call so key rotation needs no client rebuild.
package providers

import "time"

const requestTimeout = 60 * time.Second
