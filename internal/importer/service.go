package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

//go:generate mockgen -source=service.go -destination=poster_mock.go -package=importer

// Poster appends validated journal entries; satisfied by journal.Service.
type Poster interface {
	Post(ctx context.Context, act actor.Actor, params journal.PostParams) ([]*journal.Line, error)
}

// Config names the accounts imported movements are booked against.
type Config struct {
	CashAccountCode    string
	SalesAccountCode   string
	ExpenseAccountCode string
}

type Service struct {
	parser *Parser
	poster Poster
	cfg    Config
}

func NewService(poster Poster, cfg Config) *Service {
	return &Service{
		parser: NewParser(),
		poster: poster,
		cfg:    cfg,
	}
}

// Import parses the export and posts one balanced general entry per
// movement: an inflow debits cash and credits sales, an outflow debits
// the default expense account and credits cash. Movements without a
// reference get a synthetic IMP-<date>-<n> reference so they still group
// into transactions downstream.
//
// Each movement is its own journal transaction; a failure part-way leaves
// the already-posted entries in place and reports the failing row.
func (s *Service) Import(ctx context.Context, act actor.Actor, r io.Reader) ([]*journal.Line, error) {
	movements, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	var posted []*journal.Line

	for i, m := range movements {
		ref := m.ReferenceCode
		if ref == "" {
			ref = fmt.Sprintf("IMP-%s-%d", m.Date.Format("20060102"), i+1)
		}

		lines, err := s.poster.Post(ctx, act, journal.PostParams{
			Date:          m.Date,
			Class:         journal.ClassGeneral,
			ReferenceCode: ref,
			Lines:         s.entryLines(m),
		})
		if err != nil {
			return posted, fmt.Errorf("posting movement %d (%s): %w", i+1, m.Description, err)
		}

		posted = append(posted, lines...)
	}

	return posted, nil
}

func (s *Service) entryLines(m Movement) []journal.EntryLine {
	if m.Inflow {
		return []journal.EntryLine{
			{AccountCode: s.cfg.CashAccountCode, Description: m.Description, Debit: m.Amount},
			{AccountCode: s.cfg.SalesAccountCode, Description: m.Description, Credit: m.Amount},
		}
	}

	return []journal.EntryLine{
		{AccountCode: s.cfg.ExpenseAccountCode, Description: m.Description, Debit: m.Amount},
		{AccountCode: s.cfg.CashAccountCode, Description: m.Description, Credit: m.Amount},
	}
}
