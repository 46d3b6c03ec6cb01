package sync

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/veleda/arttrack/internal/domain"
	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/metrics"
)

// ReconcileFollowing computes the case-insensitive set difference between the
// remote follow list and the account's local creators, applying additions and
// removals. With clearExisting the local set is wiped up front and every
// remote entry becomes an addition.
func (s *service) ReconcileFollowing(ctx context.Context, accountID uuid.UUID, remoteUsername string, clearExisting, skipItemBackfill bool) (*domain.ReconcileResult, error) {
	log := logger.FromContext(ctx)

	remote, err := s.deps.Following.FetchFollowing(ctx, remoteUsername)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues(metrics.OpReconcile, metrics.ResultFailed).Inc()
		return nil, err
	}
	if len(remote) == 0 {
		metrics.SyncRunsTotal.WithLabelValues(metrics.OpReconcile, metrics.ResultFailed).Inc()
		return nil, ErrNoFollowedCreators
	}

	fold := cases.Fold()

	// Dedupe the remote list by folded form, keeping first-seen casing
	remoteByKey := make(map[string]string, len(remote))
	var remoteOrder []string
	for _, name := range remote {
		key := fold.String(name)
		if _, ok := remoteByKey[key]; !ok {
			remoteByKey[key] = name
			remoteOrder = append(remoteOrder, key)
		}
	}

	if clearExisting {
		removed, err := s.deps.Creators.DeleteAllCreators(ctx, accountID)
		if err != nil {
			return nil, err
		}
		log.Info(LogMsgClearExistingApplied, "removed", removed)
	}

	local, err := s.deps.Creators.GetCreators(ctx, accountID)
	if err != nil {
		return nil, err
	}
	localByKey := make(map[string]domain.Creator, len(local))
	for _, c := range local {
		localByKey[fold.String(c.Username)] = c
	}

	result := &domain.ReconcileResult{}
	var addedCreators []domain.Creator

	for _, key := range remoteOrder {
		name := remoteByKey[key]
		if existing, ok := localByKey[key]; ok {
			result.Unchanged = append(result.Unchanged, existing.Username)
			s.refreshMetaIfUnset(ctx, accountID, existing)
			continue
		}

		creator, err := s.deps.Creators.AddCreator(ctx, domain.Creator{
			AccountID: accountID,
			Username:  name,
		})
		if err != nil {
			return nil, err
		}
		s.refreshMetaIfUnset(ctx, accountID, *creator)
		result.Added = append(result.Added, name)
		addedCreators = append(addedCreators, *creator)
	}

	// Entries only in the local set are unfollowed remotely; drop them.
	// Under clearExisting the local set was already wiped.
	if !clearExisting {
		for key, c := range localByKey {
			if _, ok := remoteByKey[key]; ok {
				continue
			}
			if err := s.deps.Creators.DeleteCreator(ctx, accountID, c.ID); err != nil {
				return nil, err
			}
			result.Removed = append(result.Removed, c.Username)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Unchanged)

	if !skipItemBackfill {
		for i, creator := range addedCreators {
			if i > 0 {
				if err := s.sleep(ctx, s.cfg.CreatorDelay); err != nil {
					return result, err
				}
			}
			log.Info(LogMsgBackfillStarted, "username", creator.Username)
			if _, err := s.ScrapeFull(ctx, accountID, creator.ID); err != nil {
				// Backfill failures do not undo the reconcile itself
				log.Warn(LogMsgBatchCreatorFailed, "username", creator.Username, "error", err)
			}
		}
	}

	log.Info(LogMsgReconcileFinished,
		"added", len(result.Added), "removed", len(result.Removed), "unchanged", len(result.Unchanged))
	metrics.SyncRunsTotal.WithLabelValues(metrics.OpReconcile, metrics.ResultOK).Inc()
	return result, nil
}

// refreshMetaIfUnset opportunistically fills in display name and avatar when
// the stored creator lacks them. Best effort only.
func (s *service) refreshMetaIfUnset(ctx context.Context, accountID uuid.UUID, creator domain.Creator) {
	if s.deps.Meta == nil || (creator.DisplayName != "" && creator.AvatarURL != "") {
		return
	}

	meta, err := s.deps.Meta.FetchProfileMeta(ctx, creator.Username)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgMetaRefreshFailed, "username", creator.Username, "error", err)
		return
	}

	update := domain.CreatorUpdate{}
	if creator.DisplayName == "" && meta.DisplayName != "" {
		update.DisplayName = &meta.DisplayName
	}
	if creator.AvatarURL == "" && meta.AvatarURL != "" {
		update.AvatarURL = &meta.AvatarURL
	}
	if update.DisplayName == nil && update.AvatarURL == nil {
		return
	}
	if err := s.deps.Creators.UpdateCreator(ctx, accountID, creator.ID, update); err != nil {
		logger.FromContext(ctx).Debug(LogMsgMetaRefreshFailed, "username", creator.Username, "error", err)
	}
}
