package services

import (
	"context"
	"sort"
	"strings"

	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type recordedNotification struct {
	recipientID uint
	message     string
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(recipientID uint, message string) {
	f.sent = append(f.sent, recordedNotification{recipientID: recipientID, message: message})
}

func (f *fakeNotifier) sentTo(recipientID uint) []string {
	var messages []string
	for _, n := range f.sent {
		if n.recipientID == recipientID {
			messages = append(messages, n.message)
		}
	}
	return messages
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(name string) *models.User {
	u := &models.User{ID: r.nextID, Name: name, Email: strings.ToLower(name) + "@example.com"}
	r.users[u.ID] = u
	r.nextID++
	return u
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsers(search string, excludeIDs []uint) ([]models.User, error) {
	excluded := make(map[uint]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var users []models.User
	for _, u := range r.users {
		if excluded[u.ID] {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(search)) {
			continue
		}
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

type blockEdge struct {
	userID    uint
	blockedID uint
}

type fakeFriendshipRepo struct {
	edges         []*models.FriendRequest
	blocks        []blockEdge
	notInterested []blockEdge
	nextID        uint
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{nextID: 1}
}

func (r *fakeFriendshipRepo) GetEdge(userA, userB uint) (*models.FriendRequest, error) {
	for _, e := range r.edges {
		if (e.SenderID == userA && e.ReceiverID == userB) || (e.SenderID == userB && e.ReceiverID == userA) {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFriendshipRepo) CreateRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	e := &models.FriendRequest{
		ID:         r.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendStatusPending,
	}
	r.nextID++
	r.edges = append(r.edges, e)
	return e, nil
}

func (r *fakeFriendshipRepo) AcceptRequest(senderID, receiverID uint) error {
	for _, e := range r.edges {
		if e.SenderID == senderID && e.ReceiverID == receiverID && e.Status == models.FriendStatusPending {
			e.Status = models.FriendStatusAccepted
		}
	}
	return nil
}

func (r *fakeFriendshipRepo) DeleteEdge(userA, userB uint) error {
	kept := r.edges[:0]
	for _, e := range r.edges {
		if (e.SenderID == userA && e.ReceiverID == userB) || (e.SenderID == userB && e.ReceiverID == userA) {
			continue
		}
		kept = append(kept, e)
	}
	r.edges = kept
	return nil
}

func (r *fakeFriendshipRepo) GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var pending []models.FriendRequest
	for i := len(r.edges) - 1; i >= 0; i-- {
		e := r.edges[i]
		if e.ReceiverID == receiverID && e.Status == models.FriendStatusPending {
			pending = append(pending, *e)
		}
	}
	return pending, nil
}

func (r *fakeFriendshipRepo) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, e := range r.edges {
		if e.Status != models.FriendStatusAccepted {
			continue
		}
		if e.SenderID == userID {
			ids = append(ids, e.ReceiverID)
		} else if e.ReceiverID == userID {
			ids = append(ids, e.SenderID)
		}
	}
	return ids, nil
}

func (r *fakeFriendshipRepo) BlockUser(userID, blockedID uint) error {
	if err := r.DeleteEdge(userID, blockedID); err != nil {
		return err
	}
	has, _ := r.HasBlock(userID, blockedID)
	if !has {
		r.blocks = append(r.blocks, blockEdge{userID: userID, blockedID: blockedID})
	}
	return nil
}

func (r *fakeFriendshipRepo) UnblockUser(userID, blockedID uint) error {
	kept := r.blocks[:0]
	for _, b := range r.blocks {
		if b.userID == userID && b.blockedID == blockedID {
			continue
		}
		kept = append(kept, b)
	}
	r.blocks = kept
	return nil
}

func (r *fakeFriendshipRepo) HasBlock(userID, blockedID uint) (bool, error) {
	for _, b := range r.blocks {
		if b.userID == userID && b.blockedID == blockedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFriendshipRepo) GetBlockedIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, b := range r.blocks {
		if b.userID == userID {
			ids = append(ids, b.blockedID)
		}
	}
	return ids, nil
}

func (r *fakeFriendshipRepo) GetBlockRelatedIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, b := range r.blocks {
		if b.userID == userID {
			ids = append(ids, b.blockedID)
		} else if b.blockedID == userID {
			ids = append(ids, b.userID)
		}
	}
	return ids, nil
}

func (r *fakeFriendshipRepo) MarkNotInterested(userID, targetID uint) error {
	for _, n := range r.notInterested {
		if n.userID == userID && n.blockedID == targetID {
			return nil
		}
	}
	r.notInterested = append(r.notInterested, blockEdge{userID: userID, blockedID: targetID})
	return nil
}

func (r *fakeFriendshipRepo) GetNotInterestedIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, n := range r.notInterested {
		if n.userID == userID {
			ids = append(ids, n.blockedID)
		}
	}
	return ids, nil
}

func (r *fakeFriendshipRepo) DeleteAllForUser(userID uint) error {
	keptEdges := r.edges[:0]
	for _, e := range r.edges {
		if e.SenderID == userID || e.ReceiverID == userID {
			continue
		}
		keptEdges = append(keptEdges, e)
	}
	r.edges = keptEdges

	keptBlocks := r.blocks[:0]
	for _, b := range r.blocks {
		if b.userID == userID || b.blockedID == userID {
			continue
		}
		keptBlocks = append(keptBlocks, b)
	}
	r.blocks = keptBlocks

	keptNI := r.notInterested[:0]
	for _, n := range r.notInterested {
		if n.userID == userID || n.blockedID == userID {
			continue
		}
		keptNI = append(keptNI, n)
	}
	r.notInterested = keptNI
	return nil
}

type membershipEdge struct {
	groupID uint
	userID  uint
}

type fakeGroupRepo struct {
	groups   map[uint]*models.Group
	members  []membershipEdge
	requests []membershipEdge
	nextID   uint
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uint]*models.Group), nextID: 1}
}

func (r *fakeGroupRepo) CreateGroup(group *models.Group) error {
	group.ID = r.nextID
	r.nextID++
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) GetGroupByID(id uint) (*models.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *fakeGroupRepo) GetGroups(search string) ([]models.Group, error) {
	var groups []models.Group
	for _, g := range r.groups {
		if search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
			continue
		}
		groups = append(groups, *g)
	}
	return groups, nil
}

func (r *fakeGroupRepo) UpdateGroup(group *models.Group) error {
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) DeleteGroup(id uint) error {
	delete(r.groups, id)
	kept := r.members[:0]
	for _, m := range r.members {
		if m.groupID != id {
			kept = append(kept, m)
		}
	}
	r.members = kept
	keptReq := r.requests[:0]
	for _, m := range r.requests {
		if m.groupID != id {
			keptReq = append(keptReq, m)
		}
	}
	r.requests = keptReq
	return nil
}

func (r *fakeGroupRepo) CreateJoinRequest(groupID, userID uint) error {
	r.requests = append(r.requests, membershipEdge{groupID: groupID, userID: userID})
	return nil
}

func (r *fakeGroupRepo) DeleteJoinRequest(groupID, userID uint) error {
	kept := r.requests[:0]
	for _, m := range r.requests {
		if m.groupID == groupID && m.userID == userID {
			continue
		}
		kept = append(kept, m)
	}
	r.requests = kept
	return nil
}

func (r *fakeGroupRepo) AcceptMember(groupID, userID uint) error {
	found := false
	kept := r.requests[:0]
	for _, m := range r.requests {
		if m.groupID == groupID && m.userID == userID {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	r.requests = kept
	if !found {
		return gorm.ErrRecordNotFound
	}
	r.members = append(r.members, membershipEdge{groupID: groupID, userID: userID})
	return nil
}

func (r *fakeGroupRepo) DeleteMember(groupID, userID uint) error {
	kept := r.members[:0]
	for _, m := range r.members {
		if m.groupID == groupID && m.userID == userID {
			continue
		}
		kept = append(kept, m)
	}
	r.members = kept
	return nil
}

func (r *fakeGroupRepo) HasMember(groupID, userID uint) (bool, error) {
	for _, m := range r.members {
		if m.groupID == groupID && m.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGroupRepo) HasJoinRequest(groupID, userID uint) (bool, error) {
	for _, m := range r.requests {
		if m.groupID == groupID && m.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGroupRepo) GetMemberIDs(groupID uint) ([]uint, error) {
	var ids []uint
	for _, m := range r.members {
		if m.groupID == groupID {
			ids = append(ids, m.userID)
		}
	}
	return ids, nil
}

func (r *fakeGroupRepo) GetJoinRequestIDs(groupID uint) ([]uint, error) {
	var ids []uint
	for _, m := range r.requests {
		if m.groupID == groupID {
			ids = append(ids, m.userID)
		}
	}
	return ids, nil
}

func (r *fakeGroupRepo) GetJoinedGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	for _, m := range r.members {
		if m.userID == userID {
			if g, ok := r.groups[m.groupID]; ok {
				groups = append(groups, *g)
			}
		}
	}
	return groups, nil
}

func (r *fakeGroupRepo) GetOwnGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	for _, g := range r.groups {
		if g.AdminID == userID {
			groups = append(groups, *g)
		}
	}
	return groups, nil
}

func (r *fakeGroupRepo) DeleteAllForUser(userID uint) error {
	kept := r.members[:0]
	for _, m := range r.members {
		if m.userID != userID {
			kept = append(kept, m)
		}
	}
	r.members = kept
	keptReq := r.requests[:0]
	for _, m := range r.requests {
		if m.userID != userID {
			keptReq = append(keptReq, m)
		}
	}
	r.requests = keptReq
	return nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        uint
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	notification.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) GetByID(id uint) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) GetByRecipient(recipientID uint) ([]models.Notification, error) {
	var result []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].RecipientID == recipientID {
			result = append(result, *r.notifications[i])
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uint) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByRecipient(recipientID uint) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.RecipientID != recipientID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

type fakePostRepo struct {
	posts map[string]*models.Post
	order []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.LikedUsers == nil {
		post.LikedUsers = []models.LikeEntry{}
	}
	if post.Comments == nil {
		post.Comments = []models.CommentEntry{}
	}
	r.posts[post.ID.Hex()] = post
	r.order = append(r.order, post.ID.Hex())
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) GetPostsByUserID(_ context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	for i := len(r.order) - 1; i >= 0; i-- {
		if p := r.posts[r.order[i]]; p != nil && p.UserID == userID {
			posts = append(posts, *p)
		}
	}
	return paginate(posts, skip, limit), nil
}

func (r *fakePostRepo) GetPostsByKindForUser(_ context.Context, kind models.PostKind, userID uint) ([]models.Post, error) {
	var posts []models.Post
	for i := len(r.order) - 1; i >= 0; i-- {
		if p := r.posts[r.order[i]]; p != nil && p.Kind == kind && p.UserID == userID {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) GetTaggedPostsForUser(_ context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.posts[r.order[i]]
		if p == nil {
			continue
		}
		for _, tagged := range p.TagFriends {
			if tagged == userID {
				posts = append(posts, *p)
				break
			}
		}
	}
	return posts, nil
}

func (r *fakePostRepo) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	for i := len(r.order) - 1; i >= 0; i-- {
		if p := r.posts[r.order[i]]; p != nil {
			posts = append(posts, *p)
		}
	}
	return paginate(posts, skip, limit), nil
}

func paginate(posts []models.Post, skip, limit int64) []models.Post {
	if skip > 0 {
		if skip >= int64(len(posts)) {
			return nil
		}
		posts = posts[skip:]
	}
	if limit > 0 && limit < int64(len(posts)) {
		posts = posts[:limit]
	}
	return posts
}

func (r *fakePostRepo) UpdateBody(_ context.Context, id, body string) error {
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Body = body
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeletePostsByUser(_ context.Context, userID uint) error {
	for id, p := range r.posts {
		if p.UserID == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

func (r *fakePostRepo) DeletePostsByGroup(_ context.Context, groupID uint) error {
	for id, p := range r.posts {
		if p.GroupID == groupID {
			delete(r.posts, id)
		}
	}
	return nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID string, userID uint) (bool, error) {
	p, ok := r.posts[postID]
	if !ok {
		return false, repositories.ErrPostNotFound
	}
	for _, l := range p.LikedUsers {
		if l.UserID == userID {
			return false, nil
		}
	}
	p.LikedUsers = append(p.LikedUsers, models.LikeEntry{UserID: userID})
	p.LikesCount++
	return true, nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID string, userID uint) error {
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	for i, l := range p.LikedUsers {
		if l.UserID == userID {
			p.LikedUsers = append(p.LikedUsers[:i], p.LikedUsers[i+1:]...)
			p.LikesCount--
			return nil
		}
	}
	return nil
}

func (r *fakePostRepo) AddComment(_ context.Context, postID string, comment models.CommentEntry) error {
	p, ok := r.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

func (r *fakePostRepo) IncrementSharesCount(_ context.Context, postID string) error {
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	p.SharesCount++
	return nil
}
