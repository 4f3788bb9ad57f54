package comment

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"sitecomments/domain"
	"sitecomments/internal/repository"
)

type service struct {
	commentRepo  domain.CommentRepository
	reactionRepo domain.ReactionRepository
	bloomRepo    domain.BloomRepository
	oracle       domain.PermissionOracle
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(
	commentRepo domain.CommentRepository,
	reactionRepo domain.ReactionRepository,
	bloomRepo domain.BloomRepository,
	oracle domain.PermissionOracle,
) *service {
	return &service{
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		bloomRepo:    bloomRepo,
		oracle:       oracle,
	}
}

func (s *service) mustExist(ctx context.Context, commentID int64) error {
	exists, err := s.bloomRepo.Exists(ctx, commentID)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says comment %d does not exist", commentID)
		return domain.ErrNotFound
	}

	return nil
}

func emptyPage(page int) domain.CommentPage {
	return domain.CommentPage{
		Comments: []*domain.Comment{},
		Pagination: domain.Pagination{
			Page:          page,
			TotalPages:    0,
			TotalComments: 0,
			HasMore:       false,
		},
	}
}

// List never surfaces store failures: the page shell should render even
// when the comment section cannot, so errors are logged and swallowed.
func (s *service) List(ctx context.Context, viewer *domain.Identity, pageSlug string, page, pageSize int) domain.CommentPage {
	repository.PageVerify(&page, &pageSize)
	if pageSlug == "" {
		return emptyPage(page)
	}

	total, err := s.commentRepo.CountRoots(ctx, pageSlug)
	if err != nil {
		logrus.Errorf("failed to count comments for slug %q: %v", pageSlug, err)
		return emptyPage(page)
	}

	roots, err := s.commentRepo.FetchRoots(ctx, pageSlug, repository.Offset(page, pageSize), pageSize)
	if err != nil {
		logrus.Errorf("failed to fetch comments for slug %q: %v", pageSlug, err)
		return emptyPage(page)
	}

	rootIDs := make([]int64, len(roots))
	for i, root := range roots {
		rootIDs[i] = root.ID
	}

	var replies []*domain.Comment
	if len(rootIDs) > 0 {
		replies, err = s.commentRepo.FetchReplies(ctx, rootIDs)
		if err != nil {
			logrus.Errorf("failed to fetch replies for slug %q: %v", pageSlug, err)
			replies = nil
		}
	}

	replyMap := make(map[int64][]*domain.Comment)
	for _, r := range replies {
		replyMap[*r.ParentID] = append(replyMap[*r.ParentID], r)
	}

	// One reaction fetch covers every live comment on the page.
	reactionIDs := make([]int64, 0, len(roots)+len(replies))
	for _, root := range roots {
		if !root.Deleted {
			reactionIDs = append(reactionIDs, root.ID)
		}
	}
	for _, r := range replies {
		reactionIDs = append(reactionIDs, r.ID)
	}

	aggregates := s.loadAggregates(ctx, viewer, reactionIDs)

	for _, root := range roots {
		if root.Deleted {
			tombstone(root)
		}
		root.Reactions = aggregates[root.ID]
		if root.Reactions == nil {
			root.Reactions = domain.NewReactionAggregate()
		}
		list, ok := replyMap[root.ID]
		if !ok {
			list = []*domain.Comment{}
		}
		for _, reply := range list {
			reply.Reactions = aggregates[reply.ID]
			if reply.Reactions == nil {
				reply.Reactions = domain.NewReactionAggregate()
			}
		}
		root.Replies = list
	}

	totalPages := repository.TotalPages(total, pageSize)
	return domain.CommentPage{
		Comments: roots,
		Pagination: domain.Pagination{
			Page:          page,
			TotalPages:    totalPages,
			TotalComments: total,
			HasMore:       page < totalPages,
		},
	}
}

// tombstone blanks a deleted root kept only as context for live replies.
func tombstone(c *domain.Comment) {
	c.Content = ""
	c.UserID = 0
	c.Username = ""
	c.AvatarURL = ""
	c.EditedAt = nil
}

func (s *service) loadAggregates(ctx context.Context, viewer *domain.Identity, commentIDs []int64) map[int64]*domain.ReactionAggregate {
	if len(commentIDs) == 0 {
		return map[int64]*domain.ReactionAggregate{}
	}
	rows, err := s.reactionRepo.FetchForComments(ctx, commentIDs)
	if err != nil {
		logrus.Errorf("failed to fetch reactions: %v", err)
		rows = nil
	}
	return buildAggregates(rows, commentIDs, viewer)
}

// buildAggregates derives counts and the viewer's own reaction set in a
// single pass over the rows.
func buildAggregates(rows []domain.Reaction, commentIDs []int64, viewer *domain.Identity) map[int64]*domain.ReactionAggregate {
	res := make(map[int64]*domain.ReactionAggregate, len(commentIDs))
	for _, id := range commentIDs {
		res[id] = domain.NewReactionAggregate()
	}
	for _, row := range rows {
		agg, ok := res[row.CommentID]
		if !ok {
			continue
		}
		agg.Counts[row.Type]++
		if viewer != nil && row.UserID == viewer.ID {
			agg.ViewerApplied = append(agg.ViewerApplied, row.Type)
		}
	}
	return res
}

func (s *service) Create(ctx context.Context, identity *domain.Identity, pageSlug, content string, parentID *int64) (*domain.Comment, error) {
	if identity == nil {
		return nil, domain.ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if pageSlug == "" || content == "" {
		return nil, domain.ErrBadParamInput
	}

	if parentID != nil {
		if err := s.mustExist(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	c := &domain.Comment{
		PageSlug:  pageSlug,
		Content:   content,
		UserID:    identity.ID,
		Username:  identity.Username,
		AvatarURL: identity.AvatarURL,
		ParentID:  parentID,
	}
	if err := s.commentRepo.Store(ctx, c); err != nil {
		return nil, err
	}

	if err := s.bloomRepo.Add(ctx, c.ID); err != nil {
		logrus.Warnf("failed to add comment %d to bloom filter: %v", c.ID, err)
	}

	c.Reactions = domain.NewReactionAggregate()
	return c, nil
}

func (s *service) ToggleReaction(ctx context.Context, identity *domain.Identity, commentID int64, rt domain.ReactionType) (domain.ReactionState, error) {
	if identity == nil {
		return domain.ReactionState{}, domain.ErrUnauthorized
	}
	if !rt.Valid() {
		return domain.ReactionState{}, domain.ErrBadParamInput
	}
	if err := s.mustExist(ctx, commentID); err != nil {
		return domain.ReactionState{}, err
	}
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return domain.ReactionState{}, domain.ErrNotFound
	}

	active, err := s.reactionRepo.Toggle(ctx, commentID, identity.ID, rt)
	if err == domain.ErrConflict {
		// Lost an insert race; the row exists now, retry flips it off.
		active, err = s.reactionRepo.Toggle(ctx, commentID, identity.ID, rt)
	}
	if err != nil {
		return domain.ReactionState{}, err
	}

	agg := s.loadAggregates(ctx, identity, []int64{commentID})[commentID]
	return domain.ReactionState{
		CommentID: commentID,
		Type:      rt,
		Active:    active,
		Aggregate: agg,
	}, nil
}

func (s *service) Delete(ctx context.Context, identity *domain.Identity, commentID int64) error {
	if identity == nil {
		return domain.ErrUnauthorized
	}
	if err := s.mustExist(ctx, commentID); err != nil {
		return err
	}

	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return domain.ErrNotFound
	}
	if c.UserID != identity.ID && !s.oracle.CanDeleteAnyComment(identity.Username) {
		return domain.ErrForbidden
	}

	return s.commentRepo.SoftDelete(ctx, commentID)
}

func (s *service) Edit(ctx context.Context, identity *domain.Identity, commentID int64, content string) (*domain.Comment, error) {
	if identity == nil {
		return nil, domain.ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrBadParamInput
	}
	if err := s.mustExist(ctx, commentID); err != nil {
		return nil, err
	}

	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	// Narrower than delete: moderators may remove but never rewrite.
	if c.UserID != identity.ID {
		return nil, domain.ErrForbidden
	}

	return s.commentRepo.UpdateContent(ctx, commentID, content)
}

const bloomInitBatch = 1000

func (s *service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := s.commentRepo.FetchIDs(ctx, cursor, bloomInitBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}
