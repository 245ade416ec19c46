package tracker

import (
	"context"
	"fmt"
	"strings"

	"devtrack/internal/models"
)

// CreateChecklist creates a checklist, optionally attached to a task
// (taskSeq 0 means standalone). Requires developer.
func (s *Service) CreateChecklist(ctx context.Context, guildID string, actor Actor, name string, taskSeq int64) (*models.Checklist, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("checklist name is required")
	}

	var taskID int64
	if taskSeq != 0 {
		task, err := s.GetTask(ctx, guildID, taskSeq)
		if err != nil {
			return nil, err
		}
		taskID = task.ID
	}

	seq, err := s.store.NextSeq(ctx, guildID, models.KindChecklist)
	if err != nil {
		return nil, unavailable(err, "allocate checklist number")
	}

	checklist := &models.Checklist{
		GuildID:   guildID,
		Seq:       seq,
		TaskID:    taskID,
		Name:      name,
		CreatedBy: actor.ID,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateChecklist(ctx, checklist); err != nil {
		return nil, unavailable(err, "create checklist")
	}

	s.audit(ctx, guildID, "create", models.KindChecklist, checklist.ID, actor, "Created checklist: "+name)
	return checklist, nil
}

// GetChecklist returns a checklist by guild-sequence number.
func (s *Service) GetChecklist(ctx context.Context, guildID string, seq int64) (*models.Checklist, error) {
	checklist, err := s.store.GetChecklistBySeq(ctx, guildID, seq)
	if err != nil {
		return nil, unavailable(err, "load checklist")
	}
	if checklist == nil {
		return nil, notFound("checklist #%d not found", seq)
	}
	return checklist, nil
}

// ListChecklists returns a guild's checklists, active or archived.
func (s *Service) ListChecklists(ctx context.Context, guildID string, archived bool) ([]models.Checklist, error) {
	checklists, err := s.store.ListChecklists(ctx, guildID, archived)
	if err != nil {
		return nil, unavailable(err, "list checklists")
	}
	return checklists, nil
}

// AddChecklistItem appends an item to a checklist. Archived checklists
// refuse new items. Requires developer.
func (s *Service) AddChecklistItem(ctx context.Context, guildID string, actor Actor, checklistSeq int64, text string) (*models.ChecklistItem, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("item text is required")
	}

	checklist, err := s.GetChecklist(ctx, guildID, checklistSeq)
	if err != nil {
		return nil, err
	}
	if checklist.Archived {
		return nil, conflict("checklist #%d is archived", checklistSeq)
	}

	item := &models.ChecklistItem{ChecklistID: checklist.ID, Text: text}
	if err := s.store.AddChecklistItem(ctx, item); err != nil {
		return nil, unavailable(err, "add checklist item")
	}

	s.audit(ctx, guildID, "create", models.KindChecklistItem, item.ID, actor,
		fmt.Sprintf("Added item %d to checklist #%d", item.Position, checklistSeq))
	return item, nil
}

// ChecklistItems returns a checklist's items in order.
func (s *Service) ChecklistItems(ctx context.Context, guildID string, checklistSeq int64) ([]models.ChecklistItem, error) {
	checklist, err := s.GetChecklist(ctx, guildID, checklistSeq)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListChecklistItems(ctx, checklist.ID)
	if err != nil {
		return nil, unavailable(err, "list checklist items")
	}
	return items, nil
}

// ToggleChecklistItem flips an item's completed flag, addressed by its
// position within the checklist. Requires developer. Returns the item's
// new state.
func (s *Service) ToggleChecklistItem(ctx context.Context, guildID string, actor Actor, checklistSeq int64, position int) (*models.ChecklistItem, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	item, checklist, err := s.checklistItemAt(ctx, guildID, checklistSeq, position)
	if err != nil {
		return nil, err
	}
	if checklist.Archived {
		return nil, conflict("checklist #%d is archived", checklistSeq)
	}

	now := s.now()
	completed, err := s.store.ToggleChecklistItem(ctx, item.ID, actor.ID, now)
	if err != nil {
		return nil, unavailable(err, "toggle checklist item")
	}

	state := "unchecked"
	if completed {
		state = "checked"
	}
	s.audit(ctx, guildID, "toggle", models.KindChecklistItem, item.ID, actor,
		fmt.Sprintf("Item %d of checklist #%d %s", position, checklistSeq, state))

	item.Completed = completed
	item.ToggledBy = actor.ID
	item.ToggledAt = &now
	return item, nil
}

// RemoveChecklistItem deletes an item by position. Requires developer.
func (s *Service) RemoveChecklistItem(ctx context.Context, guildID string, actor Actor, checklistSeq int64, position int) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return err
	}

	item, _, err := s.checklistItemAt(ctx, guildID, checklistSeq, position)
	if err != nil {
		return err
	}
	removed, err := s.store.RemoveChecklistItem(ctx, item.ID)
	if err != nil {
		return unavailable(err, "remove checklist item")
	}
	if !removed {
		return notFound("checklist #%d has no item %d", checklistSeq, position)
	}

	s.audit(ctx, guildID, "delete", models.KindChecklistItem, item.ID, actor,
		fmt.Sprintf("Removed item %d from checklist #%d", position, checklistSeq))
	return nil
}

func (s *Service) checklistItemAt(ctx context.Context, guildID string, checklistSeq int64, position int) (*models.ChecklistItem, *models.Checklist, error) {
	checklist, err := s.GetChecklist(ctx, guildID, checklistSeq)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.store.ListChecklistItems(ctx, checklist.ID)
	if err != nil {
		return nil, nil, unavailable(err, "list checklist items")
	}
	for i := range items {
		if items[i].Position == position {
			return &items[i], checklist, nil
		}
	}
	return nil, nil, notFound("checklist #%d has no item %d", checklistSeq, position)
}

// SetChecklistArchived archives or restores a checklist. Requires
// developer.
func (s *Service) SetChecklistArchived(ctx context.Context, guildID string, actor Actor, checklistSeq int64, archived bool) (*models.Checklist, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	checklist, err := s.GetChecklist(ctx, guildID, checklistSeq)
	if err != nil {
		return nil, err
	}
	if checklist.Archived == archived {
		state := "archived"
		if !archived {
			state = "active"
		}
		return nil, conflict("checklist #%d is already %s", checklistSeq, state)
	}
	if err := s.store.SetChecklistArchived(ctx, checklist.ID, archived); err != nil {
		return nil, unavailable(err, "archive checklist")
	}

	action := "archive"
	detail := "Archived checklist: " + checklist.Name
	if !archived {
		detail = "Restored checklist: " + checklist.Name
	}
	s.audit(ctx, guildID, action, models.KindChecklist, checklist.ID, actor, detail)

	checklist.Archived = archived
	return checklist, nil
}

// DeleteChecklist removes a checklist and its items. Requires lead.
func (s *Service) DeleteChecklist(ctx context.Context, guildID string, actor Actor, checklistSeq int64) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return err
	}

	checklist, err := s.GetChecklist(ctx, guildID, checklistSeq)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteChecklist(ctx, checklist.ID)
	if err != nil {
		return unavailable(err, "delete checklist")
	}
	if !deleted {
		return notFound("checklist #%d not found", checklistSeq)
	}

	s.audit(ctx, guildID, "delete", models.KindChecklist, checklist.ID, actor, "Deleted checklist: "+checklist.Name)
	return nil
}
