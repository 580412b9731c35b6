package logger

import "go.uber.org/zap"

// Audit events are written through the global logger so they end up in the
// same sink as application logs and can be routed by the "audit" field.

func AuthAttempt(email string, success bool, ip string) {
	status := "FAILED"
	if success {
		status = "SUCCESS"
	}
	Logger.Info("auth attempt",
		zap.String("audit", "AUTH_ATTEMPT"),
		zap.String("user", email),
		zap.String("status", status),
		zap.String("ip", ip),
	)
}

func AdminAction(userID, action, target, ip string) {
	Logger.Info("admin action",
		zap.String("audit", "ADMIN_ACTION"),
		zap.String("user", userID),
		zap.String("action", action),
		zap.String("target", target),
		zap.String("ip", ip),
	)
}

func DocumentAccess(userID, documentID, action, ip string) {
	Logger.Info("document access",
		zap.String("audit", "DOCUMENT_ACCESS"),
		zap.String("user", userID),
		zap.String("document", documentID),
		zap.String("action", action),
		zap.String("ip", ip),
	)
}

func SecurityEvent(eventType, details, ip string) {
	Logger.Warn("security event",
		zap.String("audit", "SECURITY_EVENT"),
		zap.String("type", eventType),
		zap.String("details", details),
		zap.String("ip", ip),
	)
}
