// Package repository implements the domain operations over the lost-item
// collection: registration, lookup, deletion and the comment thread. It
// composes the flat-file record store with the asset manager and keeps the
// collection cached in memory behind a single-writer lock.
package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tops240200-jpg/lostandfound/internal/assets"
	"github.com/tops240200-jpg/lostandfound/internal/config"
	"github.com/tops240200-jpg/lostandfound/internal/model"
	"github.com/tops240200-jpg/lostandfound/internal/store"
)

// ImageUpload is the raw upload accompanying a registration. Size is the
// size declared by the uploader and is what the admission limit applies to.
type ImageUpload struct {
	Data     []byte
	FileName string
	Size     int64
}

// CreateRequest carries the fields of a new listing. Status defaults to
// "found" when empty; everything else is validated by Create.
type CreateRequest struct {
	ItemName    string
	Category    string
	FoundDate   string
	FoundTime   string
	Location    string
	Description string
	Status      string
	Image       *ImageUpload
}

// Repository holds the item collection and persists every mutation as a
// whole-document write. All mutating operations run under an exclusive
// lock: the load-mutate-save cycle must never interleave, or the later
// writer would silently discard the earlier one's change.
type Repository struct {
	mu       sync.RWMutex
	dataFile string
	assets   *assets.Manager
	items    []model.Item
}

// New builds a Repository from cfg and loads whatever collection is
// currently persisted. A missing or unreadable document starts empty.
func New(cfg *config.Config) *Repository {
	return &Repository{
		dataFile: cfg.DataFile,
		assets:   assets.NewManager(cfg.UploadDir, cfg.MaxImageSize, cfg.AllowedExtensions),
		items:    store.Load(cfg.DataFile),
	}
}

// Create validates the request, stores the image and persists the new item.
// Required fields are collected into a single ValidationError before any
// state changes; if persisting fails after the asset was stored, the
// in-memory append is rolled back and the asset is left for SweepAssets.
func (r *Repository) Create(req CreateRequest) (*model.Item, error) {
	status := req.Status
	if status == "" {
		status = model.StatusFound
	}

	var missing []string
	if req.Image == nil || len(req.Image.Data) == 0 {
		missing = append(missing, "image")
	}
	if req.ItemName == "" {
		missing = append(missing, "item_name")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	if !model.ValidCategory(req.Category) {
		missing = append(missing, "category")
	}
	if !model.ValidStatus(status) {
		missing = append(missing, "status")
	}
	if req.FoundDate != "" {
		if _, err := time.Parse("2006-01-02", req.FoundDate); err != nil {
			missing = append(missing, "found_date")
		}
	}
	if req.FoundTime != "" {
		if _, err := time.Parse("15:04", req.FoundTime); err != nil {
			missing = append(missing, "found_time")
		}
	}
	if len(missing) > 0 {
		return nil, &model.ValidationError{Fields: missing}
	}

	imagePath, err := r.assets.Store(req.Image.Data, req.Image.FileName, req.Image.Size)
	if err != nil {
		return nil, err
	}

	item := model.Item{
		ID:          uuid.New().String(),
		ItemName:    req.ItemName,
		Category:    req.Category,
		FoundDate:   req.FoundDate,
		FoundTime:   req.FoundTime,
		Location:    req.Location,
		Description: req.Description,
		Status:      status,
		ImagePath:   imagePath,
		CreatedAt:   time.Now().UTC(),
		Comments:    []model.Comment{},
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	if err := store.Save(r.dataFile, r.items); err != nil {
		r.items = r.items[:len(r.items)-1]
		return nil, fmt.Errorf("persisting new item: %w", err)
	}
	return &item, nil
}

// Get returns the item with the given id, or nil if it does not exist.
func (r *Repository) Get(id string) *model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		item := cloneItem(r.items[idx])
		return &item
	}
	return nil
}

// Items returns a copy of the current collection for read-side callers.
func (r *Repository) Items() []model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, len(r.items))
	for i := range r.items {
		items[i] = cloneItem(r.items[i])
	}
	return items
}

// Delete removes an item, its image asset and (implicitly) its comments.
// The asset delete is fire-and-forget; if persisting the shrunken
// collection fails, the in-memory record is restored so the cache keeps
// mirroring the last successfully written document, but the asset is
// already gone.
func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}
	removed := r.items[idx]

	next := make([]model.Item, 0, len(r.items)-1)
	next = append(next, r.items[:idx]...)
	next = append(next, r.items[idx+1:]...)

	prev := r.items
	r.items = next
	r.assets.Delete(removed.ImagePath)

	if err := store.Save(r.dataFile, r.items); err != nil {
		r.items = prev
		return fmt.Errorf("persisting deletion: %w", err)
	}
	return nil
}

// AddComment appends a comment to an item's thread and persists the
// collection. An empty author becomes "anonymous".
func (r *Repository) AddComment(itemID, content, author string) (*model.Comment, error) {
	if content == "" {
		return nil, &model.ValidationError{Fields: []string{"content"}}
	}
	if author == "" {
		author = model.AnonymousAuthor
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("item %s: %w", itemID, model.ErrNotFound)
	}

	comment := model.Comment{
		ID:        uuid.New().String(),
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}

	r.items[idx].Comments = append(r.items[idx].Comments, comment)
	if err := store.Save(r.dataFile, r.items); err != nil {
		c := r.items[idx].Comments
		r.items[idx].Comments = c[:len(c)-1]
		return nil, fmt.Errorf("persisting comment: %w", err)
	}
	return &comment, nil
}

// DeleteComment removes a single comment from an item's thread, leaving the
// order of its siblings intact, and persists the collection.
func (r *Repository) DeleteComment(itemID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("item %s: %w", itemID, model.ErrNotFound)
	}

	comments := r.items[idx].Comments
	pos := -1
	for i := range comments {
		if comments[i].ID == commentID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("comment %s: %w", commentID, model.ErrNotFound)
	}

	next := make([]model.Comment, 0, len(comments)-1)
	next = append(next, comments[:pos]...)
	next = append(next, comments[pos+1:]...)

	r.items[idx].Comments = next
	if err := store.Save(r.dataFile, r.items); err != nil {
		r.items[idx].Comments = comments
		return fmt.Errorf("persisting comment deletion: %w", err)
	}
	return nil
}

// SweepAssets removes image files no live item references: the leftovers of
// registrations whose final persist failed. Returns the number removed.
func (r *Repository) SweepAssets() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inUse := make(map[string]bool, len(r.items))
	for i := range r.items {
		inUse[r.items[i].ImagePath] = true
	}
	return r.assets.Sweep(inUse)
}

// indexOf returns the position of the item with the given id, or -1.
// Callers must hold at least the read lock.
func (r *Repository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItem(item model.Item) model.Item {
	comments := make([]model.Comment, len(item.Comments))
	copy(comments, item.Comments)
	item.Comments = comments
	return item
}
