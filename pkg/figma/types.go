package figma

// FileResponse represents the response from the Figma file API endpoint.
// Only the fields the token pipeline reads are decoded: file metadata, the
// document tree and the style registry.
type FileResponse struct {
	Name          string           `json:"name"`
	LastModified  string           `json:"lastModified"`
	Version       string           `json:"version"`
	Document      Node             `json:"document"`
	Styles        map[string]Style `json:"styles"`
	SchemaVersion int              `json:"schemaVersion"`
}

// Style is an entry of the file's style registry, keyed by style id.
// StyleType is one of FILL, TEXT, EFFECT or GRID.
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StyleType   string `json:"styleType"`
}

// Style types.
const (
	StyleTypeFill   = "FILL"
	StyleTypeText   = "TEXT"
	StyleTypeEffect = "EFFECT"
	StyleTypeGrid   = "GRID"
)

// Node is a single element in the Figma document tree. Styles maps a style
// slot ("fill", "stroke", "text", "effect") to the id of the style it uses.
type Node struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Children []Node            `json:"children,omitempty"`
	Styles   map[string]string `json:"styles,omitempty"`
	Fills    []Paint           `json:"fills,omitempty"`
}

// FillStyle returns the id of the fill style applied to n, if any.
func (n *Node) FillStyle() string {
	return n.Styles["fill"]
}

// Color is an RGBA color with float channels in the 0-1 range. A is a
// pointer because the API may omit it.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// Paint is a fill applied to a node. Opacity is a pointer so an absent value
// can be told apart from a fully transparent paint.
type Paint struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// Paint types.
const (
	PaintSolid = "SOLID"
)
