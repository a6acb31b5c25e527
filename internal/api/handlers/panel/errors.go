package panel

import (
	"errors"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/confirmation"
	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/support"
	"panelserver/internal/domain/templates"
	"panelserver/internal/domain/wizard"
	"panelserver/internal/infrastructure/backend"
	apperrors "panelserver/server/errors"
)

// Сообщения уведомлений
const (
	msgUnsupportedFile   = "Type de fichier non supporté. Veuillez utiliser un fichier PDF, DOC, DOCX ou TXT."
	msgFileTooLarge      = "Fichier trop volumineux. Taille maximum: 10 MB."
	msgEmptyFile         = "Le fichier est vide."
	msgProcessing        = "Un traitement est déjà en cours, veuillez patienter."
	msgStepLocked        = "Veuillez compléter les étapes précédentes."
	msgNoDocumentType    = "Veuillez sélectionner au moins un type de document à générer."
	msgNoCompany         = "Veuillez sélectionner au moins une entreprise."
	msgNoDocument        = "Aucun document n'a pu être généré. Veuillez réessayer."
	msgCompanyName       = "Le nom de l'entreprise est requis."
	msgCompanyNotFound   = "Entreprise introuvable."
	msgInvalidEmail      = "Veuillez entrer une adresse email valide."
	msgInvalidPhone      = "Veuillez entrer un numéro de téléphone valide."
	msgSelectFile        = "Veuillez sélectionner un fichier"
	msgImportFile        = "Veuillez sélectionner un fichier Excel (.xlsx ou .xls)."
	msgImportFailed      = "Erreur lors de l'import du fichier"
	msgDirectoryFailed   = "Erreur lors du chargement des entreprises"
	msgTemplateNotFound  = "Document introuvable."
	msgTemplateName      = "Le nom du document est requis."
	msgTemplateType      = "Type de document inconnu."
	msgTemplateFailed    = "Erreur lors du téléversement du document"
	msgProjectNotFound   = "Projet introuvable."
	msgProjectStatus     = "Statut de projet invalide."
	msgMissingFields     = "Veuillez remplir tous les champs du formulaire."
	msgQuestionRequired  = "La question est requise"
	msgAssistantFailed   = "L'assistant n'a pas pu répondre. Veuillez réessayer."
	msgConfirmExpired    = "Cette confirmation a expiré."
	msgInvalidRequest    = "Requête invalide"
	msgUnavailable       = "Le service est temporairement indisponible. Veuillez réessayer dans quelques instants."
	msgCriterionNotFound = "Critère introuvable."
	msgInvalidWeight     = "Le poids doit être compris entre 0 et 100."
)

type errorRule struct {
	target error
	build  func(err error) *apperrors.AppError
}

func validation(msg string) func(error) *apperrors.AppError {
	return func(err error) *apperrors.AppError { return apperrors.NewValidationError(msg, err) }
}

func warning(msg string) func(error) *apperrors.AppError {
	return func(err error) *apperrors.AppError { return apperrors.NewWarningError(msg, err) }
}

func notFound(msg string) func(error) *apperrors.AppError {
	return func(err error) *apperrors.AppError { return apperrors.NewNotFoundError(msg, err) }
}

// badGateway показывает сообщение backend, если оно есть
func badGateway(fallback string) func(error) *apperrors.AppError {
	return func(err error) *apperrors.AppError {
		return apperrors.NewBadGatewayError(wizard.UserMessage(err, fallback), err)
	}
}

// errorRules проверяются по порядку, первое совпадение побеждает
var errorRules = []errorRule{
	{backend.ErrUnavailable, func(err error) *apperrors.AppError {
		return apperrors.NewServiceUnavailableError(msgUnavailable, err)
	}},

	{events.ErrUnknownEvent, validation(msgInvalidRequest)},
	{events.ErrInvalidPayload, validation(msgInvalidRequest)},

	{wizard.ErrProcessing, func(err error) *apperrors.AppError { return apperrors.NewConflictError(msgProcessing, err) }},
	{wizard.ErrUnsupportedFileType, validation(msgUnsupportedFile)},
	{wizard.ErrFileTooLarge, validation(msgFileTooLarge)},
	{wizard.ErrEmptyFile, validation(msgEmptyFile)},
	{wizard.ErrInvalidStep, validation(msgInvalidRequest)},
	{wizard.ErrStepLocked, warning(msgStepLocked)},
	{wizard.ErrCriterionNotFound, notFound(msgCriterionNotFound)},
	{wizard.ErrInvalidWeight, validation(msgInvalidWeight)},
	{wizard.ErrCompanyNotFound, notFound(msgCompanyNotFound)},
	{wizard.ErrCompanyNameRequired, validation(msgCompanyName)},
	{wizard.ErrUnknownProjectField, validation(msgInvalidRequest)},
	{wizard.ErrNoDocumentType, warning(msgNoDocumentType)},
	{wizard.ErrUnknownDocumentType, validation(msgNoDocumentType)},
	{wizard.ErrNoCompanySelected, warning(msgNoCompany)},
	{wizard.ErrNoDocumentGenerated, badGateway(msgNoDocument)},
	{wizard.ErrUploadFailed, badGateway(wizard.UploadFallbackMessage)},
	{wizard.ErrMatchingFailed, badGateway(wizard.MatchingFallbackMessage)},

	{directory.ErrCompanyNotFound, notFound(msgCompanyNotFound)},
	{directory.ErrNameRequired, validation(msgCompanyName)},
	{directory.ErrInvalidEmail, validation(msgInvalidEmail)},
	{directory.ErrInvalidPhone, validation(msgInvalidPhone)},
	{directory.ErrNoImportFile, validation(msgSelectFile)},
	{directory.ErrUnsupportedImportFile, validation(msgImportFile)},
	{directory.ErrStoreFailed, badGateway(msgDirectoryFailed)},

	{templates.ErrTemplateNotFound, notFound(msgTemplateNotFound)},
	{templates.ErrNameRequired, validation(msgTemplateName)},
	{templates.ErrUnknownType, validation(msgTemplateType)},
	{templates.ErrNoFile, validation(msgSelectFile)},
	{templates.ErrRemoteFailed, badGateway(msgTemplateFailed)},

	{dashboard.ErrProjectNotFound, notFound(msgProjectNotFound)},
	{dashboard.ErrInvalidStatus, validation(msgProjectStatus)},
	{dashboard.ErrInvalidFilter, validation(msgInvalidRequest)},

	{support.ErrMissingFields, validation(msgMissingFields)},
	{support.ErrInvalidEmail, validation(msgInvalidEmail)},
	{support.ErrQuestionRequired, validation(msgQuestionRequired)},
	{support.ErrAssistantFailed, badGateway(msgAssistantFailed)},

	{confirmation.ErrUnknownToken, notFound(msgConfirmExpired)},
}

// toAppError переводит ошибку домена в AppError с французским сообщением
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.build(err)
		}
	}
	return apperrors.NewInternalError("unhandled panel error", err)
}

// withFallback переводит ошибку, подставляя сообщение операции для сбоев backend
func withFallback(err error, fallback string) *apperrors.AppError {
	if errors.Is(err, backend.ErrUnavailable) {
		return toAppError(err)
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) || errors.Is(err, templates.ErrRemoteFailed) || errors.Is(err, directory.ErrStoreFailed) {
		return apperrors.NewBadGatewayError(wizard.UserMessage(err, fallback), err)
	}
	return toAppError(err)
}
