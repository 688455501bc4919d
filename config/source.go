package config

// Source records which layer supplied a resolved value.
type Source string

// Layers in increasing precedence.
const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global" // ~/.config/pullsync/config.yaml
	SourceLocal   Source = "local"  // .pullsync.yaml at the git root
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Persisted reports whether values from s live in a file that Store edits.
func (s Source) Persisted() bool {
	return s == SourceGlobal || s == SourceLocal
}
