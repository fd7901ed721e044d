package repository

import (
	"context"
	"fmt"

	"github.com/kkkkikiki/lukitas/internal/model"
)

const campaignColumns = `
	id, user_id, nombre, descripcion,
	CAST(fecha_inicio AS TEXT) AS fecha_inicio,
	CAST(fecha_fin AS TEXT) AS fecha_fin,
	horario, lugar, nro_contacto, presupuesto, estado,
	CAST(created_at AS TEXT) AS created_at
`

// CampaignRepository handles campaign data operations
type CampaignRepository struct{}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{}
}

// ListCampaigns returns every campaign, newest first
func (r *CampaignRepository) ListCampaigns(ctx context.Context, db DBExecutor) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campanas ORDER BY campanas.created_at DESC`

	campaigns := []model.Campaign{}
	if err := db.SelectContext(ctx, &campaigns, query); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}

// CreateCampaign creates a new campaign and returns the stored row
func (r *CampaignRepository) CreateCampaign(ctx context.Context, db DBExecutor, campaign model.NewCampaign) (*model.Campaign, error) {
	query := db.Rebind(`
		INSERT INTO campanas (user_id, nombre, descripcion, fecha_inicio, fecha_fin, lugar, presupuesto, estado)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + campaignColumns)

	var created model.Campaign
	err := db.GetContext(ctx, &created, query,
		campaign.UserID, campaign.Name, campaign.Description, campaign.StartDate,
		campaign.EndDate, campaign.Location, campaign.Budget, campaign.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return &created, nil
}

// SetActive overwrites the active flag of a campaign
func (r *CampaignRepository) SetActive(ctx context.Context, db DBExecutor, campaignID int64, active bool) error {
	query := db.Rebind(`UPDATE campanas SET estado = ? WHERE id = ?`)

	if _, err := db.ExecContext(ctx, query, active, campaignID); err != nil {
		return fmt.Errorf("failed to update campaign state: %w", err)
	}

	return nil
}
