package chat

// User-facing strings are French, matching the deployments this
// service fronts. The provider label is interpolated where the original
// messages named the engine.
const (
	msgClarify       = "Merci de préciser votre question."
	msgNotConfigured = "Le service d’assistance automatique n’est pas configuré (URL, clé API ou modèle IA manquant). Veuillez contacter votre administrateur."

	msgCommunication   = "Erreur de communication avec le moteur IA (%s)."
	msgInvalidFormat   = "Réponse IA invalide (format non JSON) pour %s."
	msgAPIError        = "Erreur renvoyée par l’API %s : %s"
	msgRemoteAPIError  = "Erreur renvoyée par l’API distante."
	msgCallFailed      = "Erreur lors de l’appel au moteur IA (%s)."
	msgUnknownProvider = "Le fournisseur d’IA sélectionné (%s) n’est pas reconnu par cette version du service."

	genericTicketTitle = "Demande via chatbot IA"
	ticketBodyHeader   = "Conversation utilisateur (via chatbot IA) :"
	ticketBodyLine     = "Message %d de l'utilisateur :"
)
