package prompts

// Tone selects the writing-style instruction embedded in content prompts.
type Tone string

const (
	ToneDefault  Tone = "default"
	ToneBusiness Tone = "business"
	ToneAcademic Tone = "academic"
	ToneFunny    Tone = "funny"
	ToneEpic     Tone = "epic"
	TonePersonal Tone = "personal"
	ToneCustom   Tone = "custom"
)

// ContentInput carries everything the content prompt needs. All fields are
// plain data; builders never reach into storage or the network.
type ContentInput struct {
	Keywords       []string
	Tone           Tone
	CategoryNames  []string
	CharLimit      int
	SEOIntegration string // "none" disables the SEO formatting clause
}
