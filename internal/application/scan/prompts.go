package scan

import "fmt"

// registrationPrompt instrucción fija para el certificado de matriculación francés (carte grise).
const registrationPrompt = `Tu analyses la photo ou le scan d'un certificat d'immatriculation français (carte grise).
Retourne UNIQUEMENT un objet JSON (sans markdown, sans commentaire) avec exactement ces clés :
{
  "A": "numéro d'immatriculation",
  "B": "date de première immatriculation au format JJ/MM/AAAA",
  "D.1": "marque",
  "D.2": "type, variante, version",
  "D.3": "dénomination commerciale",
  "E": "numéro d'identification du véhicule (VIN, 17 caractères)",
  "F.1": "masse en charge maximale techniquement admissible en kg (nombre)",
  "G.1": "masse en service du véhicule en kg (nombre)",
  "J.1": "genre national (VP, CTTE, VASP...)",
  "P.3": "type de carburant ou source d'énergie",
  "S.1": "nombre de places assises (nombre)"
}
Si une case est illisible ou absente, mets une chaîne vide.`

// invoicePrompt instrucción fija para facturas de proveedor.
const invoicePrompt = `Tu analyses une facture fournisseur (achat de matériel ou prestation pour l'aménagement d'un fourgon).
Retourne UNIQUEMENT un objet JSON (sans markdown, sans commentaire) avec exactement ces clés :
{
  "supplier": "nom du fournisseur",
  "invoice_number": "numéro de facture",
  "date": "date de la facture au format AAAA-MM-JJ",
  "total_ht": "montant total hors taxes (nombre, point décimal)",
  "vat_rate": "taux de TVA en pourcentage (nombre, ex. 20)",
  "total_ttc": "montant total toutes taxes comprises (nombre, point décimal)"
}
Si une valeur est absente, mets une chaîne vide.`

// fieldLabels descripción de cada campo releíble por zona.
var fieldLabels = map[string]string{
	"A":              "le numéro d'immatriculation (case A)",
	"B":              "la date de première immatriculation (case B), au format JJ/MM/AAAA",
	"D.1":            "la marque (case D.1)",
	"D.2":            "le type, variante, version (case D.2)",
	"D.3":            "la dénomination commerciale (case D.3)",
	"E":              "le numéro VIN (case E), 17 caractères",
	"F.1":            "la masse maximale admissible en kg (case F.1), nombre seul",
	"G.1":            "la masse en service en kg (case G.1), nombre seul",
	"J.1":            "le genre national (case J.1)",
	"P.3":            "le type de carburant (case P.3)",
	"S.1":            "le nombre de places assises (case S.1), nombre seul",
	"supplier":       "le nom du fournisseur",
	"invoice_number": "le numéro de facture",
	"date":           "la date de la facture, au format AAAA-MM-JJ",
	"total_ht":       "le montant total hors taxes, nombre seul avec point décimal",
	"vat_rate":       "le taux de TVA en pourcentage, nombre seul",
	"total_ttc":      "le montant total TTC, nombre seul avec point décimal",
}

func fieldPrompt(field string) string {
	return fmt.Sprintf(`Cette image est un extrait agrandi d'un document. Lis %s.
Retourne UNIQUEMENT la valeur, sans phrase, sans guillemets, sans markdown. Si elle est illisible, retourne une chaîne vide.`, fieldLabels[field])
}
