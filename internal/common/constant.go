package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// UnknownAddedBy is stored as the record creator when the signed-in
// identity unexpectedly has no email.
const UnknownAddedBy = "unknown@example.com"

// AcceptedAttachmentExtensions lists the lower-case file extensions (without
// the dot) that may be attached to a record.
var AcceptedAttachmentExtensions = []string{"pdf", "doc", "docx", "jpg", "jpeg", "png"}
