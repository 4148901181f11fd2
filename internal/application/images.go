package application

import (
	"context"

	"imagepdf/internal/session"
)

type ImagesHandler struct {
	ctx     context.Context
	session *session.Session
}

func NewImagesHandler(ctx context.Context, s *session.Session) *ImagesHandler {
	return &ImagesHandler{
		ctx:     ctx,
		session: s,
	}
}

func (h *ImagesHandler) AddFiles(paths []string) ImagesResponse {
	added, rejected, err := h.session.AddFiles(h.ctx, paths)
	if err != nil {
		return h.failure(err)
	}

	return ImagesResponse{
		Success:  true,
		Images:   h.session.Items(),
		Added:    added,
		Rejected: rejected,
	}
}

func (h *ImagesHandler) AddFileData(uploads []FileUpload) ImagesResponse {
	var added []session.Item
	var rejected []session.Rejection

	for _, upload := range uploads {
		item, err := h.session.AddData(upload.Name, upload.Data)
		if err != nil {
			rejected = append(rejected, session.Rejection{Name: upload.Name, Error: err.Error()})
			continue
		}
		added = append(added, item)
	}

	return ImagesResponse{
		Success:  true,
		Images:   h.session.Items(),
		Added:    added,
		Rejected: rejected,
	}
}

func (h *ImagesHandler) Remove(id string) ImagesResponse {
	if err := h.session.Remove(id); err != nil {
		return h.failure(err)
	}
	return h.List()
}

func (h *ImagesHandler) Move(from, to int) ImagesResponse {
	if err := h.session.Move(from, to); err != nil {
		return h.failure(err)
	}
	return h.List()
}

func (h *ImagesHandler) Clear() ImagesResponse {
	h.session.Clear()
	return h.List()
}

func (h *ImagesHandler) List() ImagesResponse {
	return ImagesResponse{
		Success: true,
		Images:  h.session.Items(),
	}
}

func (h *ImagesHandler) failure(err error) ImagesResponse {
	return ImagesResponse{
		Success: false,
		Images:  h.session.Items(),
		Error:   err.Error(),
	}
}
