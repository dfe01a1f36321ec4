package catalog

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// PublisherUseCase 出版社管理用例
type PublisherUseCase struct {
	publisherRepo catalog.PublisherRepository
	bookRepo      book.Repository
}

// NewPublisherUseCase 创建出版社管理用例
func NewPublisherUseCase(publisherRepo catalog.PublisherRepository, bookRepo book.Repository) *PublisherUseCase {
	return &PublisherUseCase{
		publisherRepo: publisherRepo,
		bookRepo:      bookRepo,
	}
}

// PublisherDetail 出版社详情DTO
type PublisherDetail struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePublisherRequest 创建出版社请求
type CreatePublisherRequest struct {
	Name    string
	Address string
}

// Create 创建出版社
// 名称唯一性由数据库UNIQUE索引保证(冲突转换为ErrPublisherDuplicate)
func (uc *PublisherUseCase) Create(ctx context.Context, req CreatePublisherRequest) (*PublisherDetail, error) {
	p := catalog.NewPublisher(req.Name, req.Address)
	if err := uc.publisherRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPublisherDetail(p), nil
}

// Get 查询出版社详情
func (uc *PublisherUseCase) Get(ctx context.Context, id uint) (*PublisherDetail, error) {
	p, err := uc.publisherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPublisherDetail(p), nil
}

// List 分页查询出版社列表
func (uc *PublisherUseCase) List(ctx context.Context, keyword string, page, pageSize int) ([]*PublisherDetail, int64, error) {
	normalizePage(&page, &pageSize)

	publishers, total, err := uc.publisherRepo.List(ctx, keyword, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*PublisherDetail, len(publishers))
	for i, p := range publishers {
		details[i] = toPublisherDetail(p)
	}
	return details, total, nil
}

// UpdatePublisherRequest 更新出版社请求(Patch语义:nil表示不修改)
type UpdatePublisherRequest struct {
	Name    *string
	Address *string
}

// Update 更新出版社
func (uc *PublisherUseCase) Update(ctx context.Context, id uint, req UpdatePublisherRequest) (*PublisherDetail, error) {
	p, err := uc.publisherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.UpdateInfo(req.Name, req.Address)
	if err := uc.publisherRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return toPublisherDetail(p), nil
}

// Delete 删除出版社
// 删除守卫:名下存在图书即拒绝
func (uc *PublisherUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.publisherRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.bookRepo.CountByPublisherID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return catalog.ErrPublisherHasBooks
	}

	return uc.publisherRepo.Delete(ctx, id)
}

func toPublisherDetail(p *catalog.Publisher) *PublisherDetail {
	return &PublisherDetail{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
