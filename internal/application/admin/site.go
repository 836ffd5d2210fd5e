package admin

import (
	"fmt"
	"time"

	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
	"github.com/rs/zerolog"
)

// SiteConfig textos del sitio y valores por defecto de los descriptores.
type SiteConfig struct {
	Title       string
	Header      string
	IndexTitle  string
	ListPerPage int
	MaxShowAll  int
	InlineExtra int
}

// Site registro de modelos administrables y punto de entrada de todas las operaciones del panel.
// Se configura al arrancar (Register) y luego es de solo lectura, apto para uso concurrente.
type Site struct {
	cfg     SiteConfig
	stores  repository.Stores
	tx      repository.TxRunner
	codecs  map[string]Codec
	formats []string
	media   MediaStorage
	metrics Recorder
	log     zerolog.Logger
	now     func() time.Time

	admins map[string]*registered
	order  []string
}

// Option configura dependencias opcionales del sitio.
type Option func(*Site)

// WithLogger usa l como logger del panel.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Site) { s.log = l }
}

// WithCodecs habilita formatos de importación/exportación.
func WithCodecs(codecs ...Codec) Option {
	return func(s *Site) {
		for _, c := range codecs {
			if _, ok := s.codecs[c.Format()]; !ok {
				s.formats = append(s.formats, c.Format())
			}
			s.codecs[c.Format()] = c
		}
	}
}

// WithMedia almacenamiento para campos de imagen.
func WithMedia(m MediaStorage) Option {
	return func(s *Site) { s.media = m }
}

// WithRecorder métricas de operaciones.
func WithRecorder(r Recorder) Option {
	return func(s *Site) { s.metrics = r }
}

// WithClock reloj usado para timestamps automáticos (pruebas).
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// NewSite crea el sitio. stores sirve lecturas fuera de transacción; tx ejecuta toda escritura.
func NewSite(cfg SiteConfig, stores repository.Stores, tx repository.TxRunner, opts ...Option) *Site {
	if cfg.ListPerPage <= 0 {
		cfg.ListPerPage = 100
	}
	if cfg.MaxShowAll < 0 {
		cfg.MaxShowAll = 200
	}
	if cfg.InlineExtra < 0 {
		cfg.InlineExtra = 1
	}
	s := &Site{
		cfg:     cfg,
		stores:  stores,
		tx:      tx,
		codecs:  make(map[string]Codec),
		metrics: nopRecorder{},
		log:     zerolog.Nop(),
		now:     time.Now,
		admins:  make(map[string]*registered),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config configuración efectiva del sitio.
func (s *Site) Config() SiteConfig { return s.cfg }

// Formats formatos de intercambio habilitados, en orden de registro.
func (s *Site) Formats() []string { return append([]string(nil), s.formats...) }

// Register valida el descriptor y lo incorpora al sitio. Un descriptor inválido devuelve
// *domain.ConfigurationError y el modelo no queda registrado.
func (s *Site) Register(ma ModelAdmin) error {
	if _, ok := s.admins[ma.Model]; ok {
		return &domain.ConfigurationError{Model: ma.Model, Option: "model", Reason: "ya está registrado"}
	}
	reg, err := s.resolve(ma)
	if err != nil {
		return err
	}
	s.admins[ma.Model] = reg
	s.order = append(s.order, ma.Model)
	s.log.Info().Str("model", ma.Model).Int("columns", len(reg.columns)).Int("filters", len(reg.filters)).
		Int("actions", len(reg.actions)).Msg("modelo registrado")
	return nil
}

// Index devuelve la portada del sitio.
func (s *Site) Index() dto.IndexResponse {
	idx := dto.IndexResponse{
		SiteTitle:  s.cfg.Title,
		SiteHeader: s.cfg.Header,
		IndexTitle: s.cfg.IndexTitle,
		Models:     []dto.ModelEntry{},
		Formats:    s.Formats(),
	}
	for _, name := range s.order {
		reg := s.admins[name]
		idx.Models = append(idx.Models, dto.ModelEntry{
			Name:         name,
			Label:        reg.model.Label,
			LabelPlural:  reg.model.LabelPlural,
			ImportExport: reg.resource != nil,
		})
	}
	return idx
}

func (s *Site) admin(name string) (*registered, error) {
	reg, ok := s.admins[name]
	if !ok {
		return nil, fmt.Errorf("modelo %q: %w", name, domain.ErrNotFound)
	}
	return reg, nil
}

func (s *Site) store(stores repository.Stores, reg *registered) (repository.RecordStore, error) {
	st, err := stores.Store(reg.model.Name)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", reg.model.Name, err)
	}
	return st, nil
}
