package core

import "github.com/signalsfoundry/eventkernel/simerr"

// AdjacentModels caches, per model, the routes that feed its inputs and the
// routes that drain its outputs. Rebuilt on every successful validation.
type AdjacentModels struct {
	Inputs  []Route
	Outputs []Route
}

// SystemModel owns the model store and the route table (origin connector ->
// destination connector). Adding a model or a route invalidates the system
// until the next successful Validate.
type SystemModel struct {
	store     *ModelStore
	routes    map[ConnectorPath]ConnectorPath
	validated bool
	adjacency map[string]AdjacentModels
}

// NewSystemModel builds an empty system.
func NewSystemModel() *SystemModel {
	return &SystemModel{
		store:  NewModelStore(),
		routes: make(map[ConnectorPath]ConnectorPath),
	}
}

// Models returns the underlying model store.
func (s *SystemModel) Models() *ModelStore { return s.store }

// PushModel registers a model under id, as ModelStore.Push does, and
// invalidates the system.
func (s *SystemModel) PushModel(id string, m Model) {
	s.store.Push(id, m)
	s.validated = false
}

// PushRoute declares a route from one model's output connector to another
// model's input connector. A second call naming the same origin replaces
// the destination rather than adding a second route — an output connector
// can only ever drive one input through the persistent route table.
func (s *SystemModel) PushRoute(from, to ConnectorPath) {
	s.routes[from] = to
	s.validated = false
}

// Validated reports whether the system has passed validation since its
// last mutation.
func (s *SystemModel) Validated() bool { return s.validated }

// Adjacency returns the cached inputs/outputs for a model id. Only
// meaningful after a successful Validate; returns a zero value for ids
// with no routes (or before validation has run).
func (s *SystemModel) Adjacency(id string) AdjacentModels {
	return s.adjacency[id]
}

// Validate checks every route for existence, type compatibility, and
// handler/model-type agreement, then rebuilds the adjacency cache. On an
// already-validated, unmutated system this is a no-op that still reports
// success.
func (s *SystemModel) Validate() error {
	if s.validated {
		return nil
	}

	for from, to := range s.routes {
		fromModel, ok := s.store.Get(from.Model)
		if !ok {
			return &simerr.MissingModelError{ID: from.Model}
		}
		toModel, ok := s.store.Get(to.Model)
		if !ok {
			return &simerr.MissingModelError{ID: to.Model}
		}

		outInfo, ok := findOutputConnector(fromModel, from.Connector)
		if !ok {
			return &simerr.MissingConnectorError{Model: from.Model, Connector: from.Connector}
		}
		inIdx, ok := findInputIndex(toModel, to.Connector)
		if !ok {
			return &simerr.MissingConnectorError{Model: to.Model, Connector: to.Connector}
		}
		handler, ok := toModel.InputHandler(inIdx)
		if !ok {
			return &simerr.MissingConnectorError{Model: to.Model, Connector: to.Connector}
		}

		if handler.EventType() != outInfo.PayloadType {
			return &simerr.ConnectionTypeMismatchError{
				OutputModel:     from.Model,
				OutputConnector: from.Connector,
				InputModel:      to.Model,
				InputConnector:  to.Connector,
			}
		}
	}

	// Step 3 checks every declared input handler on every model, not just
	// the ones a route currently touches: a handler's model-type
	// declaration is a property of the handler itself, independent of
	// whether anything routes to it yet.
	for _, id := range s.store.Order() {
		m, _ := s.store.Get(id)
		for i, name := range m.InputConnectors() {
			handler, ok := m.InputHandler(i)
			if !ok {
				continue
			}
			if handler.ModelType() != m.OwnTypeID() {
				return &simerr.InvalidConnectorModelError{
					Connector: ConnectorPath{Model: id, Connector: name}.String(),
				}
			}
		}
	}

	// Step 4: rebuild the adjacency cache, rejecting a duplicate output
	// origin along the way. Because routes is keyed by origin and
	// PushRoute replaces on a repeated origin, two live routes can never
	// actually share an origin by the time Validate runs — this loop can
	// never observe a duplicate through the public API. It is kept
	// because the duplicate-output invariant is required regardless, and
	// a future route-table representation that accumulates instead of
	// replacing would need exactly this check to still hold.
	adjacency := make(map[string]*AdjacentModels, len(s.store.Order()))
	ensure := func(id string) *AdjacentModels {
		a, ok := adjacency[id]
		if !ok {
			a = &AdjacentModels{}
			adjacency[id] = a
		}
		return a
	}

	seenOrigins := make(map[ConnectorPath]bool, len(s.routes))
	for from, to := range s.routes {
		if seenOrigins[from] {
			return &simerr.RepeatedOutputError{Connector: from.String()}
		}
		seenOrigins[from] = true

		route := Route{From: ModelSource(from), To: to}
		ensure(from.Model).Outputs = append(ensure(from.Model).Outputs, route)
		ensure(to.Model).Inputs = append(ensure(to.Model).Inputs, route)
	}

	finalAdjacency := make(map[string]AdjacentModels, len(adjacency))
	for id, a := range adjacency {
		finalAdjacency[id] = *a
	}
	s.adjacency = finalAdjacency
	s.validated = true
	return nil
}
