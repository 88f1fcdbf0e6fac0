// Package config loads the pack order table that drives duplicate
// resolution. A default table for the retail lineup is embedded in the
// binary; a packsweep.yaml in the installation root or an explicit table
// file replaces it entirely.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// TableFileName is the pack table file looked up in the installation root.
const TableFileName = "packsweep.yaml"

//go:embed packs.yaml
var defaultTable []byte

// Loader implements ports.TableLoader on YAML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.TableLoader = (*Loader)(nil)

// Load returns the pack table for the installation at root. Resolution
// order: the override path if given, then root/packsweep.yaml, then the
// embedded default. A found table replaces the default wholesale; tables
// are never merged.
func (l *Loader) Load(root, override string) (domain.PackTable, error) {
	data, source, err := l.readTable(root, override)
	if err != nil {
		return domain.PackTable{}, err
	}

	var file TableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.PackTable{}, zerr.With(
			zerr.Wrap(domain.ErrPackTableParse, err.Error()), "source", source)
	}

	packs, err := validate(file.Packs)
	if err != nil {
		return domain.PackTable{}, zerr.With(err, "source", source)
	}

	return domain.NewPackTable(packs), nil
}

func (l *Loader) readTable(root, override string) (data []byte, source string, err error) {
	if override != "" {
		data, err := os.ReadFile(override) //nolint:gosec // Explicit user-provided path
		if err != nil {
			return nil, "", zerr.With(
				zerr.Wrap(domain.ErrPackTableRead, err.Error()), "path", override)
		}
		return data, override, nil
	}

	rootTable := filepath.Join(root, TableFileName)
	if data, err := os.ReadFile(rootTable); err == nil { //nolint:gosec // Fixed name under root
		l.logger.Info("using pack table from installation root")
		return data, rootTable, nil
	} else if !os.IsNotExist(err) {
		return nil, "", zerr.With(
			zerr.Wrap(domain.ErrPackTableRead, err.Error()), "path", rootTable)
	}

	return defaultTable, "embedded default", nil
}

func validate(dtos []*PackDTO) ([]domain.Pack, error) {
	if len(dtos) == 0 {
		return nil, domain.ErrPackTableEmpty
	}

	codes := make(map[string]bool, len(dtos))
	paths := make(map[string]bool, len(dtos))
	dates := make(map[string]string, len(dtos))

	packs := make([]domain.Pack, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Name == "" || dto.Code == "" || dto.Path == "" || dto.Released == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrPackMissingField, ""), "pack", dto.Name+dto.Code)
		}

		released, err := time.Parse(time.DateOnly, dto.Released)
		if err != nil {
			return nil, zerr.With(
				zerr.Wrap(domain.ErrPackTableParse, err.Error()), "pack", dto.Code)
		}

		if codes[dto.Code] {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicatePackCode, ""), "code", dto.Code)
		}
		codes[dto.Code] = true

		cleaned := filepath.Clean(filepath.FromSlash(dto.Path))
		if paths[cleaned] {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicatePackPath, ""), "path", dto.Path)
		}
		paths[cleaned] = true

		if other, ok := dates[dto.Released]; ok {
			return nil, zerr.With(zerr.With(
				zerr.Wrap(domain.ErrDuplicateReleaseDate, ""),
				"date", dto.Released), "packs", other+","+dto.Code)
		}
		dates[dto.Released] = dto.Code

		packs = append(packs, domain.Pack{
			Name:        dto.Name,
			Code:        dto.Code,
			ReleaseDate: released,
			Path:        cleaned,
		})
	}

	return packs, nil
}
