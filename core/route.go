package core

import "reflect"

// ConnectorPath names a connector on a model: (model id, connector name).
type ConnectorPath struct {
	Model     string
	Connector string
}

func (p ConnectorPath) String() string { return p.Model + "::" + p.Connector }

type sourceKind int

const (
	sourceExternal sourceKind = iota
	sourceInternal
	sourceFromModel
)

// EventSource tags the origin of a route: External (an outside caller),
// Internal (a model driving its own input without going over a wire), or
// Model (another model's output connector).
type EventSource struct {
	kind sourceKind
	path ConnectorPath
}

// ExternalSource builds the External origin tag.
func ExternalSource() EventSource { return EventSource{kind: sourceExternal} }

// InternalSource builds the Internal origin tag for the given model.
func InternalSource(model string) EventSource {
	return EventSource{kind: sourceInternal, path: ConnectorPath{Model: model}}
}

// ModelSource builds the Model origin tag for the given connector path.
func ModelSource(path ConnectorPath) EventSource {
	return EventSource{kind: sourceFromModel, path: path}
}

// IsExternal reports whether the source is External.
func (s EventSource) IsExternal() bool { return s.kind == sourceExternal }

// IsInternal reports whether the source is Internal.
func (s EventSource) IsInternal() bool { return s.kind == sourceInternal }

// ModelPath returns the connector path for a Model-origin source. The
// second return value is false for External and Internal sources.
func (s EventSource) ModelPath() (ConnectorPath, bool) {
	return s.path, s.kind == sourceFromModel
}

func (s EventSource) String() string {
	switch s.kind {
	case sourceExternal:
		return "external"
	case sourceInternal:
		return "internal(" + s.path.Model + ")"
	default:
		return s.path.String()
	}
}

// Route is a wire: an origin (from) and a destination connector (to).
type Route struct {
	From EventSource
	To   ConnectorPath
}

// OutputConnectorInfo is a model's static declaration of one output
// connector: its name and the reflect.Type of the payload it carries.
type OutputConnectorInfo struct {
	Name        string
	PayloadType reflect.Type
}

// NewOutputConnectorInfo declares an output connector carrying payloads of
// type T.
func NewOutputConnectorInfo[T any](name string) OutputConnectorInfo {
	return OutputConnectorInfo{Name: name, PayloadType: typeOf[T]()}
}
