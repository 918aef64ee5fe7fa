package schedule

import (
	"context"
	"time"

	"github.com/barbersoft/agenda-api/internal/models"
)

// Par (unidade, empresa) resolvido para uma requisição.
type UnitRef struct {
	UnitID    string `json:"unit_id"`
	CompanyID string `json:"company_id"`
}

// Interfaces estreitas por entidade: cada uma expõe apenas as operações
// que o núcleo de agendamento usa. Os métodos Find* devolvem (nil, nil)
// quando não há registro.

type UnitRepository interface {
	GetByInstanceName(
		ctx context.Context,
		instanceName string,
	) (*models.Unit, error)
}

type CatalogRepository interface {
	// -------- Barbers --------
	ListActiveBarbers(
		ctx context.Context,
		unitID string,
		nameFilter string,
	) ([]models.Barber, error)

	// Primeiro barbeiro ativo cujo nome contém o termo (case-insensitive,
	// ordem estável).
	FindBarberByName(
		ctx context.Context,
		unitID string,
		name string,
	) (*models.Barber, error)

	// -------- Services --------
	ListActiveServices(
		ctx context.Context,
		unitID string,
	) ([]models.Service, error)

	FindServiceByName(
		ctx context.Context,
		unitID string,
		name string,
	) (*models.Service, error)
}

type ClientRepository interface {
	FindByPhone(
		ctx context.Context,
		unitID string,
		phone string,
	) (*models.Client, error)

	Create(
		ctx context.Context,
		client *models.Client,
	) error

	// Aplica apenas as colunas presentes em updates.
	UpdateFields(
		ctx context.Context,
		clientID string,
		updates map[string]any,
	) error
}

type AppointmentRepository interface {
	// Agendamentos não cancelados da unidade iniciando em [dayStart, dayEnd).
	ListForDay(
		ctx context.Context,
		unitID string,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// Insere o agendamento somente se não houver sobreposição de intervalo
	// para o barbeiro. A implementação é dona da estratégia de
	// transação/travamento que torna verificação+inserção atômicas.
	// Sobreposição -> httperr.ErrBusiness("time_conflict").
	CreateIfNoConflict(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetByID(
		ctx context.Context,
		unitID string,
		appointmentID string,
	) (*models.Appointment, error)

	// Agendamento ativo (pending/confirmed) mais próximo do telefone,
	// iniciando em [from, to). to == nil significa sem limite superior.
	FindEarliestActiveByPhone(
		ctx context.Context,
		unitID string,
		phone string,
		from time.Time,
		to *time.Time,
	) (*models.Appointment, error)

	// Transição guardada para cancelled: só afeta linhas ainda ativas.
	// Devolve o número de linhas alteradas; zero significa que não havia
	// agendamento ativo com esse id (inclusive quando outra requisição
	// cancelou primeiro).
	Cancel(
		ctx context.Context,
		unitID string,
		appointmentID string,
		now time.Time,
	) (int64, error)
}
