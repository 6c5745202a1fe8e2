package reports

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"pet-lost-found/internal/ports/images"

	"github.com/google/uuid"
)

const (
	maxImageSize = 10 << 20
	imageURLTTL  = 15 * time.Minute

	DefaultCleanupDays = 90
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type imageManager struct {
	repo  ImageRepository
	store images.Store
}

// EnableImages conecta metadata (repo) y bytes (store). Sin esto las operaciones de imagen devuelven ErrUnavailable.
func (s *Service) EnableImages(repo ImageRepository, store images.Store) {
	if repo == nil || store == nil {
		s.images = nil
		return
	}
	s.images = &imageManager{repo: repo, store: store}
}

type UploadImageInput struct {
	Kind        Kind
	ReportID    string
	ContentType string
	Size        int64
	IsPrimary   bool
	Body        io.Reader
}

// ImageView agrega la URL firmada a la metadata.
type ImageView struct {
	Image
	URL string
}

// UploadImage: solo el dueño (lost) o el reporter (found).
func (s *Service) UploadImage(ctx context.Context, userID string, in UploadImageInput) (ImageView, error) {
	if s.images == nil {
		return ImageView{}, ErrUnavailable
	}
	if in.Body == nil {
		return ImageView{}, Invalid("image is required")
	}
	if in.Size <= 0 || in.Size > maxImageSize {
		return ImageView{}, Invalid(fmt.Sprintf("image must be between 1 byte and %d MB", maxImageSize>>20))
	}
	ct := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := allowedImageTypes[ct]
	if !ok {
		return ImageView{}, Invalid("image must be jpeg, png, webp or gif")
	}

	ownerID, err := s.reportOwner(ctx, in.Kind, in.ReportID)
	if err != nil {
		return ImageView{}, err
	}
	if ownerID != userID {
		return ImageView{}, Forbidden("only the report author can upload images")
	}

	img := Image{
		ID:          uuid.NewString(),
		Kind:        in.Kind,
		ReportID:    strings.TrimSpace(in.ReportID),
		ContentType: ct,
		Size:        in.Size,
		IsPrimary:   in.IsPrimary,
		CreatedAt:   s.now(),
	}
	img.ObjectKey = path.Join(string(img.Kind), img.ReportID, img.ID+ext)

	if err := s.images.store.Put(ctx, img.ObjectKey, in.Body, in.Size, ct); err != nil {
		return ImageView{}, fmt.Errorf("store image: %w", err)
	}
	if err := s.images.repo.AddImage(ctx, img); err != nil {
		// sin metadata el objeto queda huérfano
		if derr := s.images.store.Delete(ctx, img.ObjectKey); derr != nil {
			s.log.Warn("orphan image cleanup failed", map[string]any{"object_key": img.ObjectKey, "error": derr})
		}
		return ImageView{}, err
	}

	return s.imageView(ctx, img), nil
}

// ListImages es público, igual que la vista compartida del reporte.
func (s *Service) ListImages(ctx context.Context, kind Kind, reportID string) ([]ImageView, error) {
	if s.images == nil {
		return []ImageView{}, nil
	}
	if _, err := s.reportOwner(ctx, kind, reportID); err != nil {
		return nil, err
	}
	items, err := s.images.repo.ListImages(ctx, kind, strings.TrimSpace(reportID))
	if err != nil {
		return nil, err
	}
	out := make([]ImageView, 0, len(items))
	for _, img := range items {
		out = append(out, s.imageView(ctx, img))
	}
	return out, nil
}

func (s *Service) imageView(ctx context.Context, img Image) ImageView {
	url, err := s.images.store.URL(ctx, img.ObjectKey, imageURLTTL)
	if err != nil {
		s.log.Warn("image url failed", map[string]any{"object_key": img.ObjectKey, "error": err})
	}
	return ImageView{Image: img, URL: url}
}

func (s *Service) reportOwner(ctx context.Context, kind Kind, id string) (string, error) {
	id = strings.TrimSpace(id)
	switch kind {
	case KindLost:
		r, err := s.repo.GetLost(ctx, id)
		if err != nil {
			return "", err
		}
		return r.OwnerID, nil
	case KindFound:
		r, err := s.repo.GetFound(ctx, id)
		if err != nil {
			return "", err
		}
		return r.ReporterID, nil
	default:
		return "", ErrInvalidInput
	}
}

type CleanupSummary struct {
	Reports int
	Images  int
	Deleted int
	Failed  int
	DryRun  bool
}

// CleanupImages borra las fotos de reportes resueltos hace más de olderThanDays días.
// Con dryRun solo cuenta.
func (s *Service) CleanupImages(ctx context.Context, olderThanDays int, dryRun bool) (CleanupSummary, error) {
	sum := CleanupSummary{DryRun: dryRun}
	if s.images == nil {
		return sum, ErrUnavailable
	}
	if olderThanDays <= 0 {
		olderThanDays = DefaultCleanupDays
	}
	cutoff := s.now().AddDate(0, 0, -olderThanDays)

	lost, err := s.repo.ListLost(ctx, LostFilter{Status: StatusResolved, ResolvedBefore: &cutoff})
	if err != nil {
		return sum, err
	}
	found, err := s.repo.ListFound(ctx, FoundFilter{Status: StatusResolved, ResolvedBefore: &cutoff})
	if err != nil {
		return sum, err
	}

	type target struct {
		kind Kind
		id   string
	}
	targets := make([]target, 0, len(lost)+len(found))
	for _, r := range lost {
		targets = append(targets, target{KindLost, r.ID})
	}
	for _, r := range found {
		targets = append(targets, target{KindFound, r.ID})
	}

	for _, t := range targets {
		imgs, err := s.images.repo.ListImages(ctx, t.kind, t.id)
		if err != nil {
			return sum, err
		}
		if len(imgs) == 0 {
			continue
		}
		sum.Reports++
		sum.Images += len(imgs)
		if dryRun {
			continue
		}
		for _, img := range imgs {
			if err := s.images.store.Delete(ctx, img.ObjectKey); err != nil {
				sum.Failed++
				s.log.Warn("image delete failed", map[string]any{"image_id": img.ID, "object_key": img.ObjectKey, "error": err})
				continue
			}
			if err := s.images.repo.DeleteImage(ctx, img.ID); err != nil {
				sum.Failed++
				s.log.Warn("image metadata delete failed", map[string]any{"image_id": img.ID, "error": err})
				continue
			}
			sum.Deleted++
		}
	}

	s.log.Info("image cleanup finished", map[string]any{
		"days": olderThanDays, "reports": sum.Reports, "images": sum.Images,
		"deleted": sum.Deleted, "failed": sum.Failed, "dry_run": dryRun,
	})
	return sum, nil
}
