package ports

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// ShopInfo datos del vendedor impresos en la factura.
type ShopInfo struct {
	Name    string
	SIRET   string
	Address string
	Email   string
	VATRate int
}

// InvoicePDFGenerator genera la factura PDF de un pedido de la tienda.
type InvoicePDFGenerator interface {
	GenerateOrderInvoice(ctx context.Context, order *entity.Order, buyer *entity.User, shop ShopInfo) ([]byte, error)
}

// DossierPDFGenerator genera el dossier RTI en PDF.
type DossierPDFGenerator interface {
	GenerateDossier(ctx context.Context, project *entity.Project, dossier *dto.DossierResponse) ([]byte, error)
}

// OutlineExporter convierte un contorno al formato pedido (dxf, svg, pdf).
// Formato desconocido = domain.ErrInvalidInput.
type OutlineExporter interface {
	Export(o *entity.Outline, format string) (*dto.ExportedFile, error)
}

// BackupSnapshot datos de un usuario volcados en una copia de seguridad.
// IncludeDocuments añade la hoja de documentos adjuntos (facturas escaneadas).
type BackupSnapshot struct {
	IncludeDocuments bool
	Projects         []*entity.Project
	Tasks            []*entity.Task
	Expenses         []*entity.Expense
	Appointments     []*entity.Appointment
	Scenarios        []*entity.Scenario
}

// WorkbookBuilder serializa una copia de seguridad como libro de cálculo.
type WorkbookBuilder interface {
	BuildBackup(s *BackupSnapshot) ([]byte, error)
}

// ImageProcessor prepara recortes de imagen para relecturas OCR.
type ImageProcessor interface {
	// CropZone recorta la zona relativa y la amplía; devuelve PNG.
	CropZone(data []byte, contentType string, zone dto.Zone) ([]byte, error)
}
