package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/httpresp"
	"github.com/barbersoft/agenda-api/internal/models"
	"github.com/barbersoft/agenda-api/internal/phone"
	"github.com/barbersoft/agenda-api/internal/usecase/agenda"
)

// Toda requisição, da resolução da unidade ao commit, corre sob um único
// deadline: estouro vira erro para o chamador, nunca agendamento parcial.
const requestTimeout = 10 * time.Second

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type AgendaHandler struct {
	resolveUnit *agenda.ResolveUnit
	check       *agenda.CheckAvailability
	create      *agenda.CreateBooking
	cancel      *agenda.CancelBooking
}

func NewAgendaHandler(
	resolveUnit *agenda.ResolveUnit,
	check *agenda.CheckAvailability,
	create *agenda.CreateBooking,
	cancel *agenda.CancelBooking,
) *AgendaHandler {
	return &AgendaHandler{
		resolveUnit: resolveUnit,
		check:       check,
		create:      create,
		cancel:      cancel,
	}
}

////////////////////////////////////////////////////////
// REQUEST (união dos dois formatos aceitos)
////////////////////////////////////////////////////////

// O corpo chega da automação em português ou em inglês; os pares de
// campos são normalizados para a forma canônica antes de qualquer uso.
type agendaRequest struct {
	Action string `json:"action"`

	UnitID       string `json:"unit_id"`
	InstanceName string `json:"instance_name"`

	// check
	Date         string `json:"date"`
	Professional string `json:"professional"`

	// create / cancel
	Nome         string   `json:"nome"`
	ClientName   string   `json:"client_name"`
	Telefone     string   `json:"telefone"`
	ClientPhone  string   `json:"client_phone"`
	Data         string   `json:"data"`
	Datetime     string   `json:"datetime"`
	BarbeiroNome string   `json:"barbeiro_nome"`
	Servico      string   `json:"servico"`
	Service      string   `json:"service"`
	Nascimento   string   `json:"data_nascimento"`
	BirthDate    string   `json:"birth_date"`
	Observacoes  string   `json:"observacoes"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`

	AppointmentID string `json:"appointment_id"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

////////////////////////////////////////////////////////
// ENTRYPOINT
////////////////////////////////////////////////////////

func (h *AgendaHandler) Handle(c *gin.Context) {
	var req agendaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Requisição inválida")
		return
	}

	ctx, cancelCtx := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancelCtx()

	ref, err := h.resolveUnit.Execute(ctx, req.UnitID, req.InstanceName)
	if err != nil {
		writeError(c, err)
		return
	}

	switch req.Action {
	case "check":
		h.handleCheck(ctx, c, req, ref.UnitID)
	case "create":
		h.handleCreate(ctx, c, req, ref.UnitID, ref.CompanyID)
	case "cancel":
		h.handleCancel(ctx, c, req, ref.UnitID)
	default:
		httperr.BadRequest(c, "Ação inválida")
	}
}

////////////////////////////////////////////////////////
// CHECK
////////////////////////////////////////////////////////

type serviceDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (h *AgendaHandler) handleCheck(
	ctx context.Context,
	c *gin.Context,
	req agendaRequest,
	unitID string,
) {
	result, err := h.check.Execute(ctx, agenda.CheckAvailabilityInput{
		UnitID:       unitID,
		Date:         req.Date,
		Professional: req.Professional,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	payload := gin.H{
		"date":            result.Date,
		"available_slots": result.Slots,
	}
	if result.Message != "" {
		payload["message"] = result.Message
	} else {
		services := make([]serviceDTO, 0, len(result.Services))
		for _, s := range result.Services {
			services = append(services, serviceDTO{
				ID:              s.ID,
				Name:            s.Name,
				Price:           s.Price,
				DurationMinutes: s.DurationMinutes,
			})
		}
		payload["services"] = services
	}

	httpresp.OK(c, payload)
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *AgendaHandler) handleCreate(
	ctx context.Context,
	c *gin.Context,
	req agendaRequest,
	unitID string,
	companyID string,
) {
	tags := req.Tags
	if len(tags) == 0 {
		tags = []string{"Novo"}
	}

	result, err := h.create.Execute(ctx, agenda.CreateBookingInput{
		UnitID:      unitID,
		CompanyID:   companyID,
		ClientName:  firstNonEmpty(req.Nome, req.ClientName),
		ClientPhone: phone.Normalize(firstNonEmpty(req.Telefone, req.ClientPhone)),
		BarberName:  firstNonEmpty(req.BarbeiroNome, req.Professional),
		ServiceName: firstNonEmpty(req.Servico, req.Service),
		StartsAt:    firstNonEmpty(req.Data, req.Datetime),
		BirthDate:   firstNonEmpty(req.Nascimento, req.BirthDate),
		Notes:       firstNonEmpty(req.Observacoes, req.Notes),
		Tags:        tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":        "Agendamento criado com sucesso!",
		"client_created": result.ClientCreated,
		"client":         clientPayload(result.Client, result.ClientCreated),
		"appointment": gin.H{
			"id":          result.Appointment.ID,
			"client_name": result.Appointment.ClientName,
			"barber":      result.BarberName,
			"service":     result.ServiceName,
			"start_time":  result.Appointment.StartTime,
			"end_time":    result.Appointment.EndTime,
			"total_price": result.Appointment.TotalPrice,
			"status":      result.Appointment.Status,
		},
	})
}

func clientPayload(client *models.Client, created bool) gin.H {
	if client == nil {
		return nil
	}
	return gin.H{
		"id":         client.ID,
		"name":       client.Name,
		"phone":      client.Phone,
		"birth_date": client.BirthDate,
		"notes":      client.Notes,
		"tags":       client.Tags,
		"is_new":     created,
	}
}

////////////////////////////////////////////////////////
// CANCEL
////////////////////////////////////////////////////////

func (h *AgendaHandler) handleCancel(
	ctx context.Context,
	c *gin.Context,
	req agendaRequest,
	unitID string,
) {
	cancelled, err := h.cancel.Execute(ctx, agenda.CancelBookingInput{
		UnitID:        unitID,
		AppointmentID: req.AppointmentID,
		ClientPhone:   phone.Normalize(firstNonEmpty(req.Telefone, req.ClientPhone)),
		TargetDate:    firstNonEmpty(req.Data, req.Datetime),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":               "Agendamento cancelado com sucesso!",
		"cancelled_appointment": cancelled,
	})
}

////////////////////////////////////////////////////////
// ERROR MAPPING
////////////////////////////////////////////////////////

func writeError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		message := err.Error()
		if message == "" {
			message = "Erro desconhecido"
		}
		httperr.Internal(c, message)
		return
	}

	switch be.Code {
	case "missing_unit":
		httperr.BadRequest(c, "unit_id é obrigatório")
	case "missing_date":
		httperr.BadRequest(c, "Data é obrigatória")
	case "invalid_date":
		httperr.BadRequest(c, "Data inválida")
	case "invalid_datetime":
		httperr.BadRequest(c, "Data ou hora inválida")
	case "missing_fields":
		httperr.BadRequest(c, "Campos obrigatórios: nome/client_name, barbeiro_nome/professional, servico/service, data/datetime")
	case "missing_cancel_key":
		httperr.BadRequest(c, "Informe appointment_id ou telefone/client_phone")
	case "unit_not_found":
		httperr.NotFound(c, fmt.Sprintf("Unidade não encontrada para a instância \"%s\"", be.Detail))
	case "barber_not_found":
		httperr.NotFound(c, fmt.Sprintf("Barbeiro \"%s\" não encontrado", be.Detail))
	case "service_not_found":
		httperr.NotFound(c, fmt.Sprintf("Serviço \"%s\" não encontrado", be.Detail))
	case "appointment_not_found":
		httperr.NotFound(c, "Agendamento não encontrado ou já cancelado")
	case "no_appointment_for_phone":
		if be.Detail != "" {
			httperr.NotFound(c, fmt.Sprintf("Nenhum agendamento na data %s encontrado para este telefone", be.Detail))
		} else {
			httperr.NotFound(c, "Nenhum agendamento futuro encontrado para este telefone")
		}
	case "time_conflict":
		httperr.Conflict(c, fmt.Sprintf("Horário não disponível. %s já tem agendamento neste horário.", be.Detail))
	case "unit_lookup_failed":
		httperr.Internal(c, "Erro ao buscar unidade")
	case "barbers_lookup_failed":
		httperr.Internal(c, "Erro ao buscar barbeiros")
	case "appointments_lookup_failed":
		httperr.Internal(c, "Erro ao buscar agendamentos")
	case "client_create_failed":
		httperr.Internal(c, "Erro ao criar cliente: "+be.Detail)
	case "appointment_create_failed":
		httperr.Internal(c, "Erro ao criar agendamento")
	case "cancel_failed":
		httperr.Internal(c, "Erro ao cancelar agendamento")
	default:
		httperr.Internal(c, "Erro desconhecido")
	}
}
