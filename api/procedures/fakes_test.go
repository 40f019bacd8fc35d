package procedures

import (
	"sort"
	"time"

	"fullstack-go-server/domain/entity"
)

// ========== 内存版仓库 ==========
// 过程表面的测试走真实 usecase + 注册表，只把存储换成内存实现
// 语义对齐 GORM 实现：DO NOTHING / 指定列覆盖 / created_at DESC, id DESC

type fakeUserRepo struct {
	rows map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) CreateIfAbsent(user *entity.User) error {
	if _, ok := f.rows[user.ID]; ok {
		return nil // DO NOTHING：已有行完全不动
	}
	cp := *user
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.rows[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Upsert(user *entity.User, columns []string) error {
	existing, ok := f.rows[user.ID]
	if !ok {
		cp := *user
		cp.CreatedAt = time.Now()
		f.rows[user.ID] = &cp
		return nil
	}
	for _, col := range columns {
		switch col {
		case "first_name":
			existing.FirstName = user.FirstName
		case "last_name":
			existing.LastName = user.LastName
		}
	}
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) GetByID(userID string) (*entity.User, error) {
	user, ok := f.rows[userID]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) UpdateIfPresent(user *entity.User) (bool, error) {
	existing, ok := f.rows[user.ID]
	if !ok {
		return false, nil
	}
	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.ImageURL = user.ImageURL
	existing.UpdatedAt = time.Now()
	return true, nil
}

type fakePostRepo struct {
	rows  []entity.Post
	users *fakeUserRepo // 模拟 Preload("Author")
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{users: users}
}

func (f *fakePostRepo) Create(post *entity.Post) error {
	cp := *post
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	post.CreatedAt = cp.CreatedAt
	f.rows = append(f.rows, cp)
	return nil
}

// sortNewestFirst created_at DESC, id DESC（与 SQL 排序键一致）
func sortNewestFirst(posts []entity.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

func (f *fakePostRepo) withAuthor(post entity.Post) entity.Post {
	if author, ok := f.users.rows[post.AuthorID]; ok {
		cp := *author
		post.Author = &cp
	}
	return post
}

func (f *fakePostRepo) Latest() (*entity.Post, error) {
	if len(f.rows) == 0 {
		return nil, nil
	}
	all := append([]entity.Post{}, f.rows...)
	sortNewestFirst(all)
	post := f.withAuthor(all[0])
	return &post, nil
}

func (f *fakePostRepo) ListAll() ([]entity.Post, error) {
	all := make([]entity.Post, 0, len(f.rows))
	for _, post := range f.rows {
		all = append(all, f.withAuthor(post))
	}
	sortNewestFirst(all)
	return all, nil
}

func (f *fakePostRepo) ListByAuthor(authorID string) ([]entity.Post, error) {
	var mine []entity.Post
	for _, post := range f.rows {
		if post.AuthorID == authorID {
			mine = append(mine, post)
		}
	}
	sortNewestFirst(mine)
	return mine, nil
}

func (f *fakePostRepo) CountByAuthor(authorID string) (int64, error) {
	var count int64
	for _, post := range f.rows {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}
