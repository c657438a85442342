// Package server exposes a canvas controller over HTTP as a small JSON
// API. Rendering is out of scope; this is the surface a canvas frontend
// or the CLI talks to.
package server

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/petrijr/crewcanvas/internal/canvas"
	"github.com/petrijr/crewcanvas/internal/persistence"
	"github.com/petrijr/crewcanvas/internal/suggest"
	"github.com/petrijr/crewcanvas/pkg/api"
)

type addNodeRequest struct {
	Kind     api.NodeKind    `json:"type"`
	Position api.Position    `json:"position"`
	Data     json.RawMessage `json:"data"`
}

type connectRequest struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"source_handle"`
	TargetHandle string `json:"target_handle"`
}

type failRequest struct {
	Reason string `json:"reason"`
}

// New builds the fiber app for one canvas controller.
func New(ctrl *canvas.Controller) *fiber.App {
	app := fiber.New()

	// ── Graph ─────────────────────────────────────────────────────────
	app.Get("/graph", func(c fiber.Ctx) error {
		nodes, edges := ctrl.Graph()
		return c.JSON(fiber.Map{"nodes": nodes, "edges": edges})
	})

	app.Post("/blueprint", func(c fiber.Ctx) error {
		var bp api.Blueprint
		if err := c.Bind().JSON(&bp); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := ctrl.LoadBlueprint(bp); err != nil {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		nodes, edges := ctrl.Graph()
		return c.Status(201).JSON(fiber.Map{"nodes": nodes, "edges": edges})
	})

	app.Post("/layout/auto", func(c fiber.Ctx) error {
		ctrl.AutoLayout()
		nodes, edges := ctrl.Graph()
		return c.JSON(fiber.Map{"nodes": nodes, "edges": edges})
	})

	// ── Nodes ─────────────────────────────────────────────────────────
	app.Post("/nodes", func(c fiber.Ctx) error {
		var req addNodeRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		data, err := api.DecodeNodeData(req.Kind, req.Data)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		node, err := ctrl.AddNode(req.Kind, req.Position, data)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(node)
	})

	app.Patch("/nodes/:id", func(c fiber.Ctx) error {
		node, err := ctrl.MergeNodeData(c.Params("id"), c.Body())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(node)
	})

	app.Delete("/nodes/:id", func(c fiber.Ctx) error {
		if err := ctrl.DeleteNode(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(204)
	})

	app.Post("/nodes/:id/select", func(c fiber.Ctx) error {
		if err := ctrl.SelectNode(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"suggestions": ctrl.Suggestions()})
	})

	// ── Edges ─────────────────────────────────────────────────────────
	app.Post("/edges", func(c fiber.Ctx) error {
		var req connectRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		edge, err := ctrl.Connect(req.Source, req.Target, req.SourceHandle, req.TargetHandle)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(edge)
	})

	app.Delete("/edges/:id", func(c fiber.Ctx) error {
		if err := ctrl.Disconnect(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(204)
	})

	// ── History ───────────────────────────────────────────────────────
	app.Post("/undo", func(c fiber.Ctx) error {
		restored := ctrl.Undo()
		nodes, edges := ctrl.Graph()
		return c.JSON(fiber.Map{"restored": restored, "nodes": nodes, "edges": edges})
	})

	app.Post("/redo", func(c fiber.Ctx) error {
		restored := ctrl.Redo()
		nodes, edges := ctrl.Graph()
		return c.JSON(fiber.Map{"restored": restored, "nodes": nodes, "edges": edges})
	})

	// ── Suggestions ───────────────────────────────────────────────────
	app.Get("/suggestions/:kind", func(c fiber.Ctx) error {
		kind := api.NodeKind(c.Params("kind"))
		if !api.ValidKind(kind) {
			return c.Status(400).JSON(fiber.Map{"error": "unknown node kind"})
		}
		return c.JSON(suggest.Suggest(kind))
	})

	// ── Save / deploy ─────────────────────────────────────────────────
	app.Post("/save", func(c fiber.Ctx) error {
		if err := ctrl.Save(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Post("/deploy", func(c fiber.Ctx) error {
		if err := ctrl.Execute(c.Context()); err != nil {
			return fail(c, err)
		}
		return c.Status(202).JSON(ctrl.DeployState())
	})

	app.Get("/deploy/state", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"state":   ctrl.DeployState(),
			"metrics": ctrl.DeployMetrics(),
		})
	})

	app.Post("/deploy/stop", func(c fiber.Ctx) error {
		ctrl.StopDeploy()
		return c.SendStatus(204)
	})

	app.Post("/deploy/fail", func(c fiber.Ctx) error {
		var req failRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := ctrl.FailDeploy(errors.New(req.Reason)); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(204)
	})

	return app
}

// fail maps sentinel errors to HTTP statuses.
func fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, api.ErrNodeNotFound),
		errors.Is(err, api.ErrEdgeNotFound),
		errors.Is(err, persistence.ErrGraphNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, api.ErrDuplicateEdge),
		errors.Is(err, api.ErrAlreadyRunning),
		errors.Is(err, api.ErrNotRunning):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, api.ErrSelfLoop),
		errors.Is(err, api.ErrCycleDetected):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
