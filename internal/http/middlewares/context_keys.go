package middlewares

const CtxRequestID = "request_id"

// TicketIDHeader is set by the webhook handler once a code is issued and
// picked up by the request logger.
const TicketIDHeader = "X-Ticket-Id"
