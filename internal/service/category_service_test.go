package service

import (
	"errors"
	"testing"

	"github.com/frostlog/internal/db"
)

func TestCategoryService_CreateDuplicate(t *testing.T) {
	svc := NewCategoryService(setupServiceTestDB(t))

	if _, err := svc.Create("技术", "技术文章"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.Create("技术", "重复"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.Create("   ", ""); !errors.Is(err, ErrCategoryName) {
		t.Fatalf("expected ErrCategoryName, got %v", err)
	}
}

func TestCategoryService_UpdateAndDelete(t *testing.T) {
	svc := NewCategoryService(setupServiceTestDB(t))

	category, err := svc.Create("技术", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	other, err := svc.Create("生活", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	updated, err := svc.Update(category.ID, "技术分享", "含教程")
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != "技术分享" || updated.Description != "含教程" {
		t.Fatalf("unexpected category %+v", updated)
	}

	if _, err := svc.Update(other.ID, "技术分享", ""); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists on rename collision, got %v", err)
	}

	if err := svc.Delete(other.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if err := svc.Delete(other.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_PublishedUsage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	categories := NewCategoryService(gdb)
	posts := NewPostService(gdb)

	seed := []struct {
		title    string
		category string
		publish  bool
	}{
		{"a", "tech", true},
		{"b", "tech", true},
		{"c", "life", true},
		{"d", "tech", false},
		{"e", "", true},
	}
	for _, item := range seed {
		post, err := posts.Create(PostInput{Title: item.title, Category: item.category})
		if err != nil {
			t.Fatalf("create post %s: %v", item.title, err)
		}
		if item.publish {
			if _, err := posts.Publish(post.ID); err != nil {
				t.Fatalf("publish post %s: %v", item.title, err)
			}
		}
	}

	usages, err := categories.PublishedUsage()
	if err != nil {
		t.Fatalf("published usage: %v", err)
	}
	if len(usages) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(usages))
	}
	if usages[0].Name != "tech" || usages[0].Count != 2 {
		t.Fatalf("expected tech first with count 2, got %+v", usages[0])
	}
	if usages[1].Name != "life" || usages[1].Count != 1 {
		t.Fatalf("expected life with count 1, got %+v", usages[1])
	}
}

func TestCategoryService_Count(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCategoryService(gdb)

	for _, name := range []string{"a", "b", "c"} {
		if err := gdb.Create(&db.Category{Name: name}).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 categories, got %d", count)
	}
}
