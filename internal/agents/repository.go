package agents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/voice-lab/pkg/pagination"
	"github.com/JaimeStill/voice-lab/pkg/query"
	"github.com/JaimeStill/voice-lab/pkg/repository"
)

const agentColumns = `agent_id, name, created_by, first_message, prompt, voice_id, knowledge_base_ids, created_at, updated_at`

// Store defines local persistence for agents and their document references.
type Store interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)
	Find(ctx context.Context, agentID string) (*Agent, error)
	Insert(ctx context.Context, agent Agent) (*Agent, error)
	Update(ctx context.Context, agentID string, cmd UpdateCommand) (*Agent, error)
	Delete(ctx context.Context, agentID string) error
	ListReferencing(ctx context.Context, documentID string) ([]AgentRef, error)
}

type store struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// NewStore creates an agent store backed by the database.
func NewStore(db *sql.DB, logger *slog.Logger, pagination pagination.Config) Store {
	return &store{
		db:         db,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
	}
}

func (s *store) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	page.Normalize(s.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Prompt")

	filters.Apply(qb)
	qb.OrderByFields(page.Sort)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	agents, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	result := pagination.NewPageResult(agents, total, page.Page, page.PageSize)
	return &result, nil
}

func (s *store) Find(ctx context.Context, agentID string) (*Agent, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", agentID)

	agent, err := repository.QueryOne(ctx, s.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &agent, nil
}

func (s *store) Insert(ctx context.Context, agent Agent) (*Agent, error) {
	agent.KnowledgeBaseIDs = agent.KnowledgeBaseIDs.Normalize()

	q := fmt.Sprintf(`INSERT INTO agents(agent_id, name, created_by, first_message, prompt, voice_id, knowledge_base_ids)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, agentColumns)

	created, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Agent, error) {
		inserted, err := repository.QueryOne(ctx, tx, q, []any{
			agent.AgentID, agent.Name, agent.CreatedBy, agent.FirstMessage,
			agent.Prompt, agent.VoiceID, agent.KnowledgeBaseIDs,
		}, scanAgent)
		if err != nil {
			return Agent{}, err
		}

		if err := replaceRefs(ctx, tx, inserted.AgentID, inserted.KnowledgeBaseIDs); err != nil {
			return Agent{}, err
		}
		return inserted, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	s.logger.Info("agent recorded", "agent_id", created.AgentID, "name", created.Name)
	return &created, nil
}

func (s *store) Update(ctx context.Context, agentID string, cmd UpdateCommand) (*Agent, error) {
	selectQ := fmt.Sprintf(`SELECT %s FROM agents WHERE agent_id = $1 FOR UPDATE`, agentColumns)

	q := fmt.Sprintf(`UPDATE agents
		SET name = $1, first_message = $2, prompt = $3, voice_id = $4, knowledge_base_ids = $5, updated_at = NOW()
		WHERE agent_id = $6
		RETURNING %s`, agentColumns)

	updated, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Agent, error) {
		// Read-modify-write under the row lock so omitted command fields
		// keep their stored values.
		current, err := repository.QueryOne(ctx, tx, selectQ, []any{agentID}, scanAgent)
		if err != nil {
			return Agent{}, err
		}

		merged := cmd.Merge(current)
		agent, err := repository.QueryOne(ctx, tx, q, []any{
			merged.Name, merged.FirstMessage, merged.Prompt, merged.VoiceID, merged.KnowledgeBaseIDs, agentID,
		}, scanAgent)
		if err != nil {
			return Agent{}, err
		}

		if err := replaceRefs(ctx, tx, agent.AgentID, agent.KnowledgeBaseIDs); err != nil {
			return Agent{}, err
		}
		return agent, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	s.logger.Info("agent updated", "agent_id", updated.AgentID, "name", updated.Name)
	return &updated, nil
}

func (s *store) Delete(ctx context.Context, agentID string) error {
	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM agent_document_refs WHERE agent_id = $1`, agentID); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `DELETE FROM agents WHERE agent_id = $1`, agentID)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	s.logger.Info("agent deleted", "agent_id", agentID)
	return nil
}

func (s *store) ListReferencing(ctx context.Context, documentID string) ([]AgentRef, error) {
	q := `SELECT a.agent_id, a.name
		FROM agents a
		JOIN agent_document_refs r ON r.agent_id = a.agent_id
		WHERE r.document_id = $1
		ORDER BY a.name`

	refs, err := repository.QueryMany(ctx, s.db, q, []any{documentID}, scanAgentRef)
	if err != nil {
		return nil, fmt.Errorf("query referencing agents: %w", err)
	}
	return refs, nil
}

func scanAgentRef(s repository.Scanner) (AgentRef, error) {
	var ref AgentRef
	err := s.Scan(&ref.AgentID, &ref.Name)
	return ref, err
}

// replaceRefs rewrites the join table rows for an agent to match its current
// knowledge base attachments. Runs inside the same transaction as the agent
// write so the refs never drift from knowledge_base_ids.
func replaceRefs(ctx context.Context, tx *sql.Tx, agentID string, kbIDs KnowledgeBaseIDs) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM agent_document_refs WHERE agent_id = $1`, agentID); err != nil {
		return fmt.Errorf("clear document refs: %w", err)
	}

	for _, docID := range kbIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO agent_document_refs(agent_id, document_id) VALUES($1, $2)`,
			agentID, docID,
		); err != nil {
			return fmt.Errorf("insert document ref: %w", err)
		}
	}
	return nil
}
