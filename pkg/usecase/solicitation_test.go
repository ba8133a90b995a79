package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

func TestCreateSolicitationDefaults(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	created, err := uc.CreateSolicitation(ctx, &model.Solicitation{
		Number: "47QTCA-26-R-0001",
		Title:  "Cloud Migration Support",
		Status: types.SolicitationStatusApprovedToBid, // client-supplied status is ignored
	}, "capture-lead")
	gt.NoError(t, err).Required()

	gt.Value(t, created.Status).Equal(types.SolicitationStatusDraft)
	gt.Value(t, created.OverallLevel).Equal(types.RiskLevelL1)
	gt.Number(t, created.OverallScore).Equal(0)
}

func TestCreateSolicitationValidation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	cases := map[string]*model.Solicitation{
		"missing number": {Title: "No Number"},
		"missing title":  {Number: "47QTCA-26-R-0002"},
		"bad contract type": {
			Number:       "47QTCA-26-R-0003",
			Title:        "Bad Type",
			ContractType: "HANDSHAKE",
		},
	}

	for name, sol := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateSolicitation(ctx, sol, "capture-lead")
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, usecase.ErrValidationFailed)).True()
		})
	}
}

func TestUpdateSolicitationEditability(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	sol := seedSolicitation(t, uc, types.ContractTypeTimeAndMaterials)

	agency := "GSA"
	updated, err := uc.UpdateSolicitation(ctx, sol.ID, &model.SolicitationUpdate{Agency: &agency}, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Agency).Equal("GSA")

	// still editable during extraction
	moved, err := uc.SubmitForExtraction(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Value(t, moved.Status).Equal(types.SolicitationStatusExtractionPending)

	title := "Retitled"
	_, err = uc.UpdateSolicitation(ctx, sol.ID, &model.SolicitationUpdate{Title: &title}, "capture-lead")
	gt.NoError(t, err).Required()

	// locked once extraction completes
	_, err = uc.AttestNoClauses(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()

	_, err = uc.UpdateSolicitation(ctx, sol.ID, &model.SolicitationUpdate{Title: &title}, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidState)).True()
}

func TestUpdateSolicitationCannotClearNumber(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	sol := seedSolicitation(t, uc, types.ContractTypeTimeAndMaterials)

	empty := ""
	_, err := uc.UpdateSolicitation(ctx, sol.ID, &model.SolicitationUpdate{Number: &empty}, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrValidationFailed)).True()
}

func TestAuditTrailRecordsLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeTimeAndMaterials)

	events, err := uc.ListAuditTrail(ctx, types.EntityTypeSolicitation, fmt.Sprintf("%d", sol.ID))
	gt.NoError(t, err).Required()
	gt.Array(t, events).Length(2)
	gt.Value(t, events[0].Action).Equal(types.AuditActionCreate)
	gt.Value(t, events[1].Action).Equal(types.AuditActionStatusChange)
	gt.Value(t, events[1].NewValue).Equal(types.SolicitationStatusExtractionPending.String())
}
