package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/intelligence"
	"github.com/alexanderramin/waypoint/internal/planner"
	"github.com/alexanderramin/waypoint/internal/repository"
)

// ErrEmptyQuestion is returned by Ask when the question is blank after
// trimming. Nothing is read, generated, or stored in that case.
var ErrEmptyQuestion = errors.New("question is empty")

// FallbackAnswer is recorded when the answer gateway fails or returns nothing.
const FallbackAnswer = "Sorry, I couldn't get an answer."

// unknownSubgoalName labels a subgoal whose record no longer exists.
const unknownSubgoalName = "(unknown)"

type qnaService struct {
	subgoals repository.SubgoalRepo
	history  repository.QnaRepo
	gateway  intelligence.AnswerGateway
	observer UseCaseObserver
}

func NewQnaService(
	subgoals repository.SubgoalRepo,
	history repository.QnaRepo,
	gateway intelligence.AnswerGateway,
	observers ...UseCaseObserver,
) QnaService {
	return &qnaService{
		subgoals: subgoals,
		history:  history,
		gateway:  gateway,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *qnaService) Open(ctx context.Context, subgoalID string) (snap *domain.QnaSnapshot, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"subgoal_id": subgoalID}
	defer func() {
		s.observe(ctx, "qna-open", startedAt, err, fields)
	}()

	history, err := s.history.History(ctx, subgoalID)
	if err != nil {
		return nil, fmt.Errorf("reading qna history: %w", err)
	}
	fields["history_len"] = len(history)
	return &domain.QnaSnapshot{SubgoalID: subgoalID, History: history}, nil
}

func (s *qnaService) Ask(ctx context.Context, subgoalID, rawQuestion string) (snap *domain.QnaSnapshot, err error) {
	question := strings.TrimSpace(rawQuestion)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	startedAt := time.Now().UTC()
	fields := map[string]any{"subgoal_id": subgoalID}
	defer func() {
		s.observe(ctx, "qna-ask", startedAt, err, fields)
	}()

	focal, found, err := s.focalSubgoal(ctx, subgoalID)
	if err != nil {
		return nil, err
	}
	fields["subgoal_found"] = found

	var siblings []domain.Subgoal
	if focal.PlanID != "" {
		siblings, err = s.subgoals.ListByPlan(ctx, focal.PlanID)
		if err != nil {
			return nil, fmt.Errorf("listing siblings of %s: %w", subgoalID, err)
		}
	}
	order := planner.OrderSiblings(siblings, subgoalID)

	history, err := s.history.History(ctx, subgoalID)
	if err != nil {
		return nil, fmt.Errorf("reading qna history: %w", err)
	}

	prompt := intelligence.AssembleQnaPrompt(focal, order, history, question)
	answer, answerErr := s.answer(ctx, prompt)
	fields["fallback"] = answerErr != nil
	if answerErr != nil {
		fields["answer_error"] = answerErr.Error()
	}

	// Once the gateway has been consulted the turn is recorded even if the
	// caller has gone away.
	persistCtx := context.WithoutCancel(ctx)
	if _, err = s.history.Append(persistCtx, subgoalID, question, answer); err != nil {
		return nil, fmt.Errorf("recording qna entry: %w", err)
	}
	updated, err := s.history.History(persistCtx, subgoalID)
	if err != nil {
		return nil, fmt.Errorf("reading qna history: %w", err)
	}
	fields["history_len"] = len(updated)

	return &domain.QnaSnapshot{SubgoalID: subgoalID, History: updated}, nil
}

// focalSubgoal loads the subgoal being asked about. A missing subgoal yields
// a placeholder so history stays askable after the subgoal is deleted.
func (s *qnaService) focalSubgoal(ctx context.Context, subgoalID string) (domain.Subgoal, bool, error) {
	sg, err := s.subgoals.GetByID(ctx, subgoalID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Subgoal{ID: subgoalID, Name: unknownSubgoalName}, false, nil
	}
	if err != nil {
		return domain.Subgoal{}, false, fmt.Errorf("loading subgoal %s: %w", subgoalID, err)
	}
	return *sg, true, nil
}

// answer calls the gateway and never fails: errors, panics, and blank
// answers all become FallbackAnswer. The returned error only describes why.
func (s *qnaService) answer(ctx context.Context, prompt string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			answer, err = FallbackAnswer, fmt.Errorf("answer gateway panicked: %v", r)
		}
	}()

	text, err := s.gateway.Answer(ctx, prompt)
	if err != nil {
		return FallbackAnswer, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackAnswer, errors.New("answer gateway returned an empty answer")
	}
	return text, nil
}

func (s *qnaService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
