package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/packsweep/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/packsweep/internal/adapters/dbpf"   //nolint:depguard // Wired in app layer
	"go.trai.ch/packsweep/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/packsweep/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/packsweep/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			dbpf.NodeID,
			fs.ScannerNodeID,
			fs.VerifierNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	tables, err := graft.Dep[ports.TableLoader](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	codec, err := graft.Dep[ports.ArchiveCodec](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(tables, scanner, codec, verifier, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
