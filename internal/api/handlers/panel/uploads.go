package panel

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/templates"
	"panelserver/internal/domain/wizard"
	apperrors "panelserver/server/errors"
)

// XLSXContentType тип книги Excel
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// formFile открывает файл формы; отсутствие файла возвращает http.ErrMissingFile
func formFile(c *gin.Context, field string) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	return f, header, nil
}

// UploadSpecification загружает техническое задание шага 1
// @Summary Загрузка технического задания
// @Description Анализирует документ (PDF, DOC, DOCX, TXT) и возвращает фрагменты шага 2
// @Tags wizard
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Техническое задание"
// @Success 200 {object} common.JSONResponse{data=events.Result}
// @Router /wizard/upload [post]
func (h *Handler) UploadSpecification(c *gin.Context) {
	st := h.session(c)

	f, header, err := formFile(c, "file")
	if err != nil {
		h.respond(c, nil, apperrors.NewValidationError(msgSelectFile, err))
		return
	}
	defer f.Close()

	wz := h.Consultation.Wizard()
	state, uploadErr := wz.Upload(c.Request.Context(), st.Wizard, wizard.UploadFile{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Content:  f,
	})

	res := events.NewResult()
	if err := h.wizardFragments(res, st); err != nil {
		h.respond(c, nil, err)
		return
	}
	if uploadErr != nil {
		// Сообщение уже выбрано мастером по этапу сбоя
		if errors.Is(uploadErr, wizard.ErrUploadFailed) && state.UploadError != "" {
			uploadErr = apperrors.NewBadGatewayError(state.UploadError, uploadErr)
		}
		h.respond(c, res, uploadErr)
		return
	}
	h.respond(c, res, nil)
}

// ImportCompanies импортирует таблицу компаний
// @Summary Импорт компаний
// @Description Передает файл xlsx или xls хранилищу и перезагружает справочник
// @Tags directory
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Таблица Excel"
// @Success 200 {object} common.JSONResponse{data=events.Result}
// @Router /database/import [post]
func (h *Handler) ImportCompanies(c *gin.Context) {
	st := h.session(c)

	f, header, err := formFile(c, "file")
	if err != nil {
		h.respond(c, nil, apperrors.NewValidationError(msgSelectFile, errors.Join(directory.ErrNoImportFile, err)))
		return
	}
	defer f.Close()

	result, err := h.Companies.Import(c.Request.Context(), st.Directory, directory.ImportFile{
		Name:    header.Filename,
		Size:    header.Size,
		Content: f,
	})
	if err != nil {
		h.respond(c, nil, withFallback(err, msgImportFailed))
		return
	}

	res := events.NewResult()
	if err := h.directoryFragments(res, st.Directory, true); err != nil {
		h.respond(c, nil, err)
		return
	}
	h.respond(c, res.WithAlert(events.AlertSuccess, fmt.Sprintf("%d entreprises importées avec succès", result.Imported)), nil)
}

// UploadTemplate добавляет шаблон документа
// @Summary Загрузка шаблона
// @Tags templates
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Название"
// @Param type formData string true "Тип документа"
// @Param description formData string false "Описание"
// @Param file formData file true "Файл шаблона"
// @Success 200 {object} common.JSONResponse{data=events.Result}
// @Router /templates/upload [post]
func (h *Handler) UploadTemplate(c *gin.Context) {
	st := h.session(c)

	upload := templates.Upload{
		Name:        c.PostForm("name"),
		Type:        c.PostForm("type"),
		Description: c.PostForm("description"),
	}
	f, header, err := formFile(c, "file")
	switch {
	case err == nil:
		defer f.Close()
		upload.FileName = header.Filename
		upload.Size = header.Size
		upload.Content = f
	case !errors.Is(err, http.ErrMissingFile):
		h.respond(c, nil, apperrors.NewValidationError(msgSelectFile, err))
		return
	}

	if _, err := h.Templates.Upload(c.Request.Context(), upload); err != nil {
		h.respond(c, nil, withFallback(err, msgTemplateFailed))
		return
	}

	res := events.NewResult()
	if err := h.templatesGrid(c.Request.Context(), st, res); err != nil {
		h.respond(c, nil, err)
		return
	}
	h.respond(c, res.WithAlert(events.AlertSuccess, "Document téléversé avec succès"), nil)
}

// ExportCompanies выгружает отфильтрованный справочник в xlsx
// @Summary Экспорт компаний
// @Tags directory
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /database/export [get]
func (h *Handler) ExportCompanies(c *gin.Context) {
	st := h.session(c)

	b, err := h.loadedDirectory(c.Request.Context(), st)
	if err != nil {
		h.respond(c, nil, err)
		return
	}

	var buf bytes.Buffer
	if err := h.Companies.Export(b, &buf); err != nil {
		h.respond(c, nil, apperrors.NewInternalError("failed to export companies", err))
		return
	}

	fileName := fmt.Sprintf("entreprises_%s.xlsx", h.opts.Clock().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, XLSXContentType, buf.Bytes())
}

// MetricsSnapshot метрики событий и ошибок
// @Summary Метрики сервера
// @Tags system
// @Produce json
// @Success 200 {object} common.JSONResponse
// @Router /metrics [get]
func (h *Handler) MetricsSnapshot(c *gin.Context) {
	h.respond(c, events.NewResult().WithState(gin.H{
		"requests": h.Metrics.Snapshot(),
		"errors":   h.ErrorMetrics.Snapshot(),
		"sessions": h.Sessions.Len(),
	}), nil)
}
