package eventform

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English key doubles as the English text.
const (
	msgTitleRequired         = "Enter the event title."
	msgStartRequired         = "Choose the start date and time."
	msgStartInvalid          = "The start date is not valid."
	msgCityRequired          = "Enter the city or mark the location as to be announced."
	msgLocationNameRequired  = "Enter the venue name."
	msgLocationUnconfirmed   = "Pick one of the suggested addresses."
	msgEndInvalid            = "The end date is not valid."
	msgEndBeforeStart        = "The end must be after the start."
	msgTicketsRequired       = "Add at least one ticket."
	msgTicketNameRequired    = "Every ticket needs a name."
	msgTicketPriceNegative   = "Ticket prices cannot be negative."
	msgTicketPriceMinimum    = "Paid tickets must cost at least %.2f."
	msgTicketPriceMaximum    = "Ticket prices cannot exceed %.2f."
	msgTicketCapacityInvalid = "Ticket capacity must be a whole number greater than zero."
	msgGatewayNotReady       = "Connect your payment account and verify the official email before selling paid tickets."
	msgClubRequired          = "Choose the club hosting the tournament."
	msgCourtRequired         = "Choose at least one court."
	msgStaffRequired         = "Choose the staff working at the partner club."
	msgCategoryRequired      = "Choose at least one category."
	msgCategoryTicketMissing = "Each category needs exactly one ticket."
	msgCategoryTicketDup     = "Two tickets point to the same category."
	msgCategoryTagMissing    = "Ticket %q must end with the category tag %s."
	msgRegistrationWindow    = "Registration must close after it opens."
)

func init() {
	pt := language.Portuguese
	for key, text := range map[string]string{
		msgTitleRequired:         "Informe o título do evento.",
		msgStartRequired:         "Escolha a data e hora de início.",
		msgStartInvalid:          "A data de início não é válida.",
		msgCityRequired:          "Informe a cidade ou marque o local como a definir.",
		msgLocationNameRequired:  "Informe o nome do local.",
		msgLocationUnconfirmed:   "Selecione um dos endereços sugeridos.",
		msgEndInvalid:            "A data de término não é válida.",
		msgEndBeforeStart:        "O término deve ser depois do início.",
		msgTicketsRequired:       "Adicione pelo menos um ingresso.",
		msgTicketNameRequired:    "Todo ingresso precisa de um nome.",
		msgTicketPriceNegative:   "O preço do ingresso não pode ser negativo.",
		msgTicketPriceMinimum:    "Ingressos pagos devem custar no mínimo %.2f.",
		msgTicketPriceMaximum:    "O preço do ingresso não pode passar de %.2f.",
		msgTicketCapacityInvalid: "A quantidade do ingresso deve ser um número inteiro maior que zero.",
		msgGatewayNotReady:       "Conecte sua conta de pagamentos e verifique o e-mail oficial antes de vender ingressos pagos.",
		msgClubRequired:          "Escolha o clube que vai receber o torneio.",
		msgCourtRequired:         "Escolha pelo menos uma quadra.",
		msgStaffRequired:         "Escolha a equipe que vai trabalhar no clube parceiro.",
		msgCategoryRequired:      "Escolha pelo menos uma categoria.",
		msgCategoryTicketMissing: "Cada categoria precisa de exatamente um ingresso.",
		msgCategoryTicketDup:     "Dois ingressos apontam para a mesma categoria.",
		msgCategoryTagMissing:    "O ingresso %q deve terminar com a tag da categoria %s.",
		msgRegistrationWindow:    "As inscrições devem fechar depois de abrir.",
	} {
		if err := message.SetString(pt, key, text); err != nil {
			panic(err)
		}
	}
}
