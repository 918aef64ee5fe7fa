package agenda

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/barbersoft/agenda-api/internal/audit"
	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ResolveClientInput struct {
	UnitID    string
	CompanyID string

	Name  string
	Phone string // somente dígitos, vazio = sem identidade de cliente

	BirthDate string // YYYY-MM-DD
	Notes     string
	Tags      []string
}

// ======================================================
// USE CASE — Client Identity Resolver
// ======================================================

type ResolveClient struct {
	clients domain.ClientRepository
	audit   *audit.Dispatcher
}

func NewResolveClient(
	clients domain.ClientRepository,
	auditDispatcher *audit.Dispatcher,
) *ResolveClient {
	return &ResolveClient{
		clients: clients,
		audit:   auditDispatcher,
	}
}

// Execute encontra ou cria o cliente da unidade pelo telefone.
//
// Sem telefone não há identidade de cliente: devolve (nil, false, nil) e
// o agendamento segue só com o snapshot de nome/telefone. Com telefone,
// registro existente recebe um merge não destrutivo; registro novo é
// criado com total_visits 0 — e essa criação é obrigatória: falha aqui
// derruba o agendamento inteiro.
func (uc *ResolveClient) Execute(
	ctx context.Context,
	in ResolveClientInput,
) (*models.Client, bool, error) {

	if in.Phone == "" {
		return nil, false, nil
	}

	existing, err := uc.clients.FindByPhone(ctx, in.UnitID, in.Phone)
	if err != nil {
		log.Printf("client lookup failed for phone %s: %v", in.Phone, err)
	}

	if existing != nil {
		return uc.merge(ctx, existing, in), false, nil
	}

	client := &models.Client{
		UnitID:      in.UnitID,
		Name:        in.Name,
		Phone:       &in.Phone,
		BirthDate:   parseBirthDate(in.BirthDate),
		Notes:       optional(in.Notes),
		Tags:        datatypes.JSONSlice[string](in.Tags),
		TotalVisits: 0,
	}
	if in.CompanyID != "" {
		client.CompanyID = &in.CompanyID
	}

	if err := uc.clients.Create(ctx, client); err != nil {
		// Corrida de primeiro agendamento: o índice único (unit_id, phone)
		// barrou a duplicata, então outro request acabou de criar o
		// cliente. Rebusca e segue com merge.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if raced, ferr := uc.clients.FindByPhone(ctx, in.UnitID, in.Phone); ferr == nil && raced != nil {
				return uc.merge(ctx, raced, in), false, nil
			}
		}
		return nil, false, httperr.ErrBusinessDetail("client_create_failed", err.Error())
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:    in.UnitID,
		CompanyID: client.CompanyID,
		Action:    "client_created",
		Entity:    "client",
		EntityID:  &client.ID,
	})

	return client, true, nil
}

// merge aplica ao cadastro existente apenas o que agrega: data de
// nascimento só quando ausente, observações só quando diferentes, tags em
// união. Nada mudou -> nenhuma escrita. Escrita falhou -> devolve o
// registro pré-merge em vez de abortar o agendamento.
func (uc *ResolveClient) merge(
	ctx context.Context,
	existing *models.Client,
	in ResolveClientInput,
) *models.Client {

	updates := map[string]any{}
	merged := *existing

	if bd := parseBirthDate(in.BirthDate); bd != nil && existing.BirthDate == nil {
		updates["birth_date"] = *bd
		merged.BirthDate = bd
	}

	if in.Notes != "" && (existing.Notes == nil || *existing.Notes != in.Notes) {
		updates["notes"] = in.Notes
		merged.Notes = optional(in.Notes)
	}

	if len(in.Tags) > 0 {
		union := unionTags(existing.Tags, in.Tags)
		if len(union) != len(existing.Tags) {
			updates["tags"] = datatypes.JSONSlice[string](union)
			merged.Tags = datatypes.JSONSlice[string](union)
		}
	}

	if len(updates) == 0 {
		return existing
	}

	if err := uc.clients.UpdateFields(ctx, existing.ID, updates); err != nil {
		log.Printf("client merge failed for %s: %v", existing.ID, err)
		return existing
	}

	return &merged
}

func unionTags(current []string, incoming []string) []string {
	seen := make(map[string]bool, len(current)+len(incoming))
	union := make([]string, 0, len(current)+len(incoming))

	for _, t := range current {
		if !seen[t] {
			seen[t] = true
			union = append(union, t)
		}
	}
	for _, t := range incoming {
		if !seen[t] {
			seen[t] = true
			union = append(union, t)
		}
	}
	return union
}

func parseBirthDate(raw string) *datatypes.Date {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
