package cache

// Keyer builds cache keys. Implementations must produce keys that differ
// whenever any input that changes the cached bytes differs.
type Keyer interface {
	// LayoutKey identifies a layout of one track of a MIDI file.
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs of a layout besides the MIDI bytes.
type LayoutKeyOpts struct {
	Track int `json:"track"`
	// Config is any JSON-encodable value holding the layout configuration.
	Config any `json:"config"`
}

// ArtifactKeyOpts are the inputs of a render besides the layout.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	CutColor     string  `json:"cut_color"`
	EngraveColor string  `json:"engrave_color"`
	FontHash     string  `json:"font_hash,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sourceHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
