package product

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// localScheme — префикс ссылок на файлы устройства, ещё не выгруженные
// на сервер.
const localScheme = "file://"

// reconcileImages приводит список изображений товара к именам файлов,
// известным серверу. Локальные ссылки (file://) выгружаются на сервер
// параллельно, с ограничением на число одновременных выгрузок; результат
// каждой выгрузки занимает место своего источника, сохраняя относительный
// порядок, и дописывается после уже серверных записей. У серверных записей
// отбрасывается всё, кроме последнего сегмента пути: эндпоинт сохранения
// ожидает голые имена файлов.
//
// Любая неудачная выгрузка отменяет согласование целиком: частичного
// успеха нет, сохранение товара не выполняется.
func (s *Service) reconcileImages(ctx context.Context, images []string) ([]string, error) {
	const op = "product.reconcileImages"

	var pending, current []string
	for _, image := range images {
		if strings.HasPrefix(image, localScheme) {
			pending = append(pending, image)
		} else {
			current = append(current, image)
		}
	}

	if len(pending) > 0 {
		uploaded := make([]string, len(pending))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.UploadLimit)
		for i, image := range pending {
			g.Go(func() error {
				name, err := s.uploadImage(gctx, image)
				if err != nil {
					return err
				}
				uploaded[i] = name
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		current = append(current, uploaded...)
	}

	names := make([]string, 0, len(current))
	for _, image := range current {
		names = append(names, lastSegment(image))
	}
	return names, nil
}

// uploadImage отправляет один локальный файл на эндпоинт выгрузки
// и возвращает имя, под которым его сохранил сервер.
func (s *Service) uploadImage(ctx context.Context, image string) (string, error) {
	const op = "product.uploadImage"

	path := strings.TrimPrefix(image, localScheme)
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer file.Close()

	filename := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	var resp struct {
		Image string `json:"image"`
	}
	if err := s.client.Upload(ctx, "/files/product", "file", filename, contentType, file, &resp); err != nil {
		return "", fmt.Errorf("%s: %s: %w", op, filename, err)
	}
	return resp.Image, nil
}

// lastSegment возвращает часть строки после последнего "/".
func lastSegment(value string) string {
	if i := strings.LastIndex(value, "/"); i >= 0 {
		return value[i+1:]
	}
	return value
}
