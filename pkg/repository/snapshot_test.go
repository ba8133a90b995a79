package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/interfaces"
	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/repository/firestore"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
)

func runSnapshotRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append stores snapshot with generated ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Snapshot().Append(ctx, &model.RiskLogSnapshot{
			SolicitationID: 1,
			Clauses: []model.SnapshotClause{
				{EntryID: 1, ClauseID: 10, Number: "252.204-7012", Percent: 80, Level: types.RiskLevelL4, Assessed: true},
				{EntryID: 2, ClauseID: 11, Number: "52.204-21", Assessed: false},
			},
			OverallScore: 72,
			OverallLevel: types.RiskLevelL3,
		})
		if err != nil {
			t.Fatalf("failed to append snapshot: %v", err)
		}
		if created.ID == "" {
			t.Error("expected generated snapshot ID")
		}
		if created.GeneratedAt.IsZero() {
			t.Error("expected non-zero GeneratedAt")
		}
		if len(created.Clauses) != 2 {
			t.Errorf("expected 2 snapshot clauses, got %d", len(created.Clauses))
		}
	})

	t.Run("Latest returns the most recently generated snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-48 * time.Hour)
		for i, score := range []int{40, 55, 70} {
			_, err := repo.Snapshot().Append(ctx, &model.RiskLogSnapshot{
				SolicitationID: 1,
				OverallScore:   score,
				OverallLevel:   types.RiskLevelL3,
				GeneratedAt:    base.Add(time.Duration(i) * time.Hour),
			})
			if err != nil {
				t.Fatalf("failed to append snapshot: %v", err)
			}
		}

		latest, err := repo.Snapshot().Latest(ctx, 1)
		if err != nil {
			t.Fatalf("failed to get latest snapshot: %v", err)
		}
		if latest.OverallScore != 70 {
			t.Errorf("expected latest overall score 70, got %d", latest.OverallScore)
		}
	})

	t.Run("Latest returns error when no snapshot exists", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Snapshot().Latest(ctx, 42)
		if err == nil {
			t.Error("expected error for solicitation without snapshots")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListBySolicitation returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-24 * time.Hour)
		for i := 0; i < 3; i++ {
			_, err := repo.Snapshot().Append(ctx, &model.RiskLogSnapshot{
				SolicitationID: 1,
				OverallScore:   i * 10,
				GeneratedAt:    base.Add(time.Duration(i) * time.Hour),
			})
			if err != nil {
				t.Fatalf("failed to append snapshot: %v", err)
			}
		}

		snapshots, err := repo.Snapshot().ListBySolicitation(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list snapshots: %v", err)
		}
		if len(snapshots) != 3 {
			t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
		}
		if snapshots[0].OverallScore != 20 {
			t.Errorf("expected newest snapshot first, got score %d", snapshots[0].OverallScore)
		}
	})
}

func runAuditRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append stores event with generated ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Audit().Append(ctx, &model.AuditEvent{
			EntityType: types.EntityTypeSolicitation,
			EntityID:   "1",
			Action:     types.AuditActionStatusChange,
			Field:      "status",
			OldValue:   "APPROVAL_REQUIRED",
			NewValue:   "APPROVED_TO_BID",
			Actor:      "capture-lead",
		})
		if err != nil {
			t.Fatalf("failed to append audit event: %v", err)
		}
		if created.ID == "" {
			t.Error("expected generated audit ID")
		}
		if created.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
	})

	t.Run("ListByEntity filters and orders chronologically", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		events := []*model.AuditEvent{
			{EntityType: types.EntityTypeSolicitation, EntityID: "1", Action: types.AuditActionCreate},
			{EntityType: types.EntityTypeSolicitation, EntityID: "1", Action: types.AuditActionStatusChange},
			{EntityType: types.EntityTypeSolicitation, EntityID: "2", Action: types.AuditActionCreate},
			{EntityType: types.EntityTypeAssessment, EntityID: "1", Action: types.AuditActionAssess},
		}
		for _, e := range events {
			if _, err := repo.Audit().Append(ctx, e); err != nil {
				t.Fatalf("failed to append audit event: %v", err)
			}
			time.Sleep(2 * time.Millisecond)
		}

		listed, err := repo.Audit().ListByEntity(ctx, types.EntityTypeSolicitation, "1")
		if err != nil {
			t.Fatalf("failed to list audit events: %v", err)
		}
		if len(listed) != 2 {
			t.Fatalf("expected 2 events, got %d", len(listed))
		}
		if listed[0].Action != types.AuditActionCreate {
			t.Errorf("expected CREATE first, got %s", listed[0].Action)
		}
		if listed[1].Action != types.AuditActionStatusChange {
			t.Errorf("expected STATUS_CHANGE second, got %s", listed[1].Action)
		}
	})
}

func TestMemorySnapshotRepository(t *testing.T) {
	runSnapshotRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreSnapshotRepository(t *testing.T) {
	runSnapshotRepositoryTest(t, newFirestoreRepository)
}

func TestMemoryAuditRepository(t *testing.T) {
	runAuditRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAuditRepository(t *testing.T) {
	runAuditRepositoryTest(t, newFirestoreRepository)
}
