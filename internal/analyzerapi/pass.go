package analyzerapi

// Framework is a framework-specific pass affinity (spec §4.4.1).
type Framework string

const (
	FrameworkNone   Framework = ""
	FrameworkReact  Framework = "react"
	FrameworkAngular Framework = "angular"
	FrameworkVue    Framework = "vue"
	FrameworkSvelte Framework = "svelte"
)

// Pass is the uniform contract every analyzer rule implements (spec
// §4.4.1). Passes are pure over Context: they never mutate the model,
// and may run in any order.
type Pass interface {
	Name() string
	Description() string

	// RequiresDocument reports whether this pass needs a full
	// DocumentModel; the orchestrator skips it (emitting no issues)
	// when one isn't available.
	RequiresDocument() bool

	// TeleratesFile reports whether this pass can still produce useful
	// output from a single ActionLanguageModel with no DocumentModel.
	TeleratesFile() bool

	// Framework names the framework this pass is specific to, or
	// FrameworkNone if it applies generally.
	Framework() Framework

	Analyze(ctx Context) []Issue
}
