// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// HomeViewModel holds everything the single page renders: the usage meter,
// the form state, and the outcome of the last generation request.
type HomeViewModel struct {
	CSRFToken   string
	Topic       string
	Meter       UsageMeterViewModel
	Privileged  bool
	ShowUpgrade bool
	CanGenerate bool

	// Warning and Error are mutually exclusive with Result.
	Warning string
	Error   string
	Result  *ResultViewModel
}

// UsageMeterViewModel holds presentation-ready data for the free-post meter.
type UsageMeterViewModel struct {
	UsedLabel string // e.g. "1/2"
	Summary   string // "N remaining!" or the upsell line
	Slots     []MeterSlotViewModel
}

// MeterSlotViewModel is one circle in the usage meter.
type MeterSlotViewModel struct {
	State string // "available", "used" or "locked"
	Label string
}

// ResultViewModel holds a generated post and the post-generation usage line.
type ResultViewModel struct {
	Post        string
	PreviewHTML string // sanitized markdown rendering of Post
	CopyScript  string // <script> element exposing Post to clipboard.js

	ShowUsage bool // false for privileged sessions
	UsedLabel string
	Summary   string
}
