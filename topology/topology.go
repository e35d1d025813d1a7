// Package topology loads a declarative route table from JSON and wires it
// into an already-populated core.SystemModel. Models themselves are not
// described here — Go's type system has no runtime-constructible generic
// model the way a dynamically typed authoring layer would — so callers
// register models in code first, then call Load to wire the connectors
// between them from a file a non-Go operator can edit.
package topology

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/signalsfoundry/eventkernel/core"
	"github.com/signalsfoundry/eventkernel/internal/logging"
)

// Route is one entry of a route table: model_id::connector_name on both
// ends. ID is optional in the source file — when omitted, Load synthesizes
// one so every route has a stable identifier to key log lines and metrics
// on, even for a file an operator hand-wrote without thinking about ids.
type Route struct {
	ID   string    `json:"id,omitempty"`
	From Connector `json:"from"`
	To   Connector `json:"to"`
}

// Connector names a single connector on a registered model.
type Connector struct {
	Model     string `json:"model"`
	Connector string `json:"connector"`
}

func (c Connector) path() core.ConnectorPath {
	return core.ConnectorPath{Model: c.Model, Connector: c.Connector}
}

// Document is the top-level shape of a topology file: a flat list of
// routes to push onto a system in order.
type Document struct {
	Routes []Route `json:"routes"`
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	log logging.Logger
}

// WithLogger attaches a logger Load uses to report each synthesized route
// id, for correlation against whatever log lines a caller's routing code
// emits later using that same id.
func WithLogger(log logging.Logger) Option {
	return func(o *loadOptions) { o.log = log }
}

// Load decodes a topology document from r and pushes every route onto sys
// in file order, in a single pass. It does not validate the system — the
// caller still calls sys.Validate() (or core.New, which validates
// implicitly) once every model and route is in place.
func Load(sys *core.SystemModel, r io.Reader, opts ...Option) (*Document, error) {
	if sys == nil {
		return nil, fmt.Errorf("topology: Load: system is nil")
	}

	cfg := loadOptions{log: logging.Noop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("topology: Load: decode failed: %w", err)
	}

	for i := range doc.Routes {
		route := &doc.Routes[i]
		if route.From.Model == "" || route.From.Connector == "" {
			return nil, fmt.Errorf("topology: Load: route with empty origin")
		}
		if route.To.Model == "" || route.To.Connector == "" {
			return nil, fmt.Errorf("topology: Load: route with empty destination")
		}
		if route.ID == "" {
			route.ID = uuid.New().String()
			cfg.log.Debug(context.Background(), "topology: synthesized route id",
				logging.String("route_id", route.ID),
				logging.String("from", route.From.path().String()),
				logging.String("to", route.To.path().String()),
			)
		}
		sys.PushRoute(route.From.path(), route.To.path())
	}

	return &doc, nil
}
