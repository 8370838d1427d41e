package app

import (
	"context"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// QnaInteractor connects a QnaUseCase to a presenter. Nothing is presented
// when the use case fails; the error is returned to the caller instead.
type QnaInteractor struct {
	useCase   QnaUseCase
	presenter QnaPresenter
}

func NewQnaInteractor(useCase QnaUseCase, presenter QnaPresenter) *QnaInteractor {
	return &QnaInteractor{useCase: useCase, presenter: presenter}
}

// Open loads the subgoal's history and presents it as the initial view.
func (i *QnaInteractor) Open(ctx context.Context, subgoalID string) (*domain.QnaSnapshot, error) {
	snap, err := i.useCase.Open(ctx, subgoalID)
	if err != nil {
		return nil, err
	}
	i.presenter.PresentInitial(*snap)
	return snap, nil
}

// Ask submits one question and presents the updated history.
func (i *QnaInteractor) Ask(ctx context.Context, subgoalID, question string) (*domain.QnaSnapshot, error) {
	snap, err := i.useCase.Ask(ctx, subgoalID, question)
	if err != nil {
		return nil, err
	}
	i.presenter.PresentUpdate(*snap)
	return snap, nil
}
