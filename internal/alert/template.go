package alert

import "fmt"

// warningSubject is the fixed subject line of the delay warning email.
const warningSubject = "ENTREGA RETRASADA POR CONDICIONES CLIMÁTICAS"

// warningBodyFormat is the fixed bilingual body template. The single verb
// slot in each paragraph is the forecast condition text, which arrives
// already localized from the provider (lang=es).
const warningBodyFormat = "¡Hola! Mañana se espera %s, lo que podría retrasar la entrega de tu paquete. " +
	"Haremos todo lo posible para cumplir con tu entrega.\n\n" +
	"Hello! %s is expected tomorrow, which may delay the delivery of your package. " +
	"We will do everything we can to complete your delivery on time."

// warningMessage builds the subject and body of the delay warning email for
// the given forecast condition text.
func warningMessage(conditionText string) (subject, body string) {
	return warningSubject, fmt.Sprintf(warningBodyFormat, conditionText, conditionText)
}
