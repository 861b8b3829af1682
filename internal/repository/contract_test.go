package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
	"github.com/bigkaa/goartstore/files-manager/internal/domain/objectid"
)

// runContract проверяет поведение FileRepository, общее для всех бэкендов.
func runContract(t *testing.T, repo FileRepository) {
	t.Helper()
	ctx := context.Background()

	newFile := func(owner, parent, name string, kind model.Kind) *model.FileRecord {
		f := &model.FileRecord{
			ID:       objectid.New(),
			OwnerID:  owner,
			Name:     name,
			Kind:     kind,
			ParentID: parent,
		}
		if kind != model.KindFolder {
			loc := "/tmp/files_manager/" + f.ID
			f.StorageLocation = &loc
		}
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create(%s) ошибка: %v", name, err)
		}
		return f
	}

	t.Run("CreateAndGet", func(t *testing.T) {
		folder := newFile("owner-a", model.RootID, "docs", model.KindFolder)
		if folder.CreatedAt.IsZero() {
			t.Error("CreatedAt не установлен")
		}

		got, err := repo.GetByOwner(ctx, folder.ID, "owner-a")
		if err != nil {
			t.Fatalf("GetByOwner() ошибка: %v", err)
		}
		if got.Name != "docs" || got.Kind != model.KindFolder || got.StorageLocation != nil {
			t.Errorf("GetByOwner() = %+v, неожиданная запись", got)
		}
		if got.IsPublic {
			t.Error("новая запись не должна быть публичной")
		}
	})

	t.Run("OwnershipScoped", func(t *testing.T) {
		f := newFile("owner-a", model.RootID, "secret.txt", model.KindFile)

		if _, err := repo.GetByOwner(ctx, f.ID, "owner-b"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetByOwner(чужой) ошибка = %v, ожидалась ErrNotFound", err)
		}
		if _, err := repo.GetByOwner(ctx, objectid.Null, "owner-a"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetByOwner(Null) ошибка = %v, ожидалась ErrNotFound", err)
		}
		if _, err := repo.SetVisibility(ctx, f.ID, "owner-b", true); !errors.Is(err, ErrNotFound) {
			t.Errorf("SetVisibility(чужой) ошибка = %v, ожидалась ErrNotFound", err)
		}
	})

	t.Run("VisibilityAndGetVisible", func(t *testing.T) {
		f := newFile("owner-a", model.RootID, "photo.png", model.KindImage)

		if _, err := repo.GetVisible(ctx, f.ID, "owner-b"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetVisible(приватный, чужой) ошибка = %v, ожидалась ErrNotFound", err)
		}

		updated, err := repo.SetVisibility(ctx, f.ID, "owner-a", true)
		if err != nil {
			t.Fatalf("SetVisibility() ошибка: %v", err)
		}
		if !updated.IsPublic || updated.Name != "photo.png" {
			t.Errorf("SetVisibility() = %+v, ожидалась публичная запись", updated)
		}

		// Повторный вызов идемпотентен
		again, err := repo.SetVisibility(ctx, f.ID, "owner-a", true)
		if err != nil || !again.IsPublic {
			t.Errorf("повторный SetVisibility() = %+v, %v", again, err)
		}

		if _, err := repo.GetVisible(ctx, f.ID, "owner-b"); err != nil {
			t.Errorf("GetVisible(публичный, чужой) ошибка: %v", err)
		}

		if _, err := repo.SetVisibility(ctx, f.ID, "owner-a", false); err != nil {
			t.Fatalf("SetVisibility(false) ошибка: %v", err)
		}
		if _, err := repo.GetVisible(ctx, f.ID, "owner-b"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetVisible после unpublish ошибка = %v, ожидалась ErrNotFound", err)
		}
	})

	t.Run("ListChildrenOrderAndPaging", func(t *testing.T) {
		parent := newFile("owner-c", model.RootID, "album", model.KindFolder)
		var ids []string
		for i := 0; i < 25; i++ {
			f := newFile("owner-c", parent.ID, "img", model.KindImage)
			ids = append(ids, f.ID)
		}
		// Запись другого владельца в той же папке не попадает в выборку
		newFile("owner-d", parent.ID, "foreign", model.KindFile)

		page0, err := repo.ListChildren(ctx, "owner-c", parent.ID, 20, 0)
		if err != nil {
			t.Fatalf("ListChildren(page 0) ошибка: %v", err)
		}
		if len(page0) != 20 {
			t.Fatalf("len(page0) = %d, ожидалось 20", len(page0))
		}
		if page0[0].ID != ids[24] {
			t.Errorf("первая запись = %s, ожидалась последняя созданная %s", page0[0].ID, ids[24])
		}

		page1, err := repo.ListChildren(ctx, "owner-c", parent.ID, 20, 20)
		if err != nil {
			t.Fatalf("ListChildren(page 1) ошибка: %v", err)
		}
		if len(page1) != 5 {
			t.Fatalf("len(page1) = %d, ожидалось 5", len(page1))
		}
		if page1[4].ID != ids[0] {
			t.Errorf("последняя запись = %s, ожидалась первая созданная %s", page1[4].ID, ids[0])
		}

		page5, err := repo.ListChildren(ctx, "owner-c", parent.ID, 20, 100)
		if err != nil {
			t.Fatalf("ListChildren(page 5) ошибка: %v", err)
		}
		if page5 == nil || len(page5) != 0 {
			t.Errorf("ListChildren(за пределами) = %v, ожидался пустой срез", page5)
		}

		none, err := repo.ListChildren(ctx, "owner-c", objectid.Null, 20, 0)
		if err != nil {
			t.Fatalf("ListChildren(Null) ошибка: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("ListChildren(Null) = %d записей, ожидалось 0", len(none))
		}
	})

	t.Run("Count", func(t *testing.T) {
		before, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count() ошибка: %v", err)
		}
		newFile("owner-e", model.RootID, "one.txt", model.KindFile)
		after, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count() ошибка: %v", err)
		}
		if after != before+1 {
			t.Errorf("Count() = %d, ожидалось %d", after, before+1)
		}
	})
}
