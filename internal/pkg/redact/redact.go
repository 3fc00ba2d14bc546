// redact маскирует чувствительные данные перед выводом в логи и в терминал:
// e-mail и bearer-токены. Домен e-mail и отпечаток токена сохраняются:
// по ним запись сопоставляется с пользователем/сессией.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// minPreviewLen — токены не длиннее показываются только заглушкой.
	minPreviewLen  = 12
	fingerprintLen = 8
)

// Email маскирует e-mail для логирования.
//
// Правила:
//   - строка должна содержать РОВНО один символ '@', иначе возвращается "***";
//   - локальная часть заменяется на первые два символа (по рунам) + "***";
//   - если длина локальной части ≤ 2 символов — возвращается "***@<domain>".
//
// Примеры:
//
//	"foobar@example.com" -> "fo***@example.com"
//	"ab@ex.com"          -> "***@ex.com"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := s[:i], s[i+1:]

	lr := []rune(local)
	if len(lr) > 2 {
		local = string(lr[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token возвращает литерал-заглушку для токена в логах.
func Token() string { return "[REDACTED_TOKEN]" }

// Preview возвращает отпечаток токена для `session status`: первые символы
// hex(sha256). Одинаковый для одного токена и разный для разных, даже если
// у JWT совпадает заголовок. Короткие и пустые значения редактируются целиком.
//
//	"eyJhbGciOi..." -> "sha256:3f1c9a0b"
func Preview(token string) string {
	if len(token) <= minPreviewLen {
		return Token()
	}

	sum := sha256.Sum256([]byte(token))
	return "sha256:" + hex.EncodeToString(sum[:])[:fingerprintLen]
}

// Authorization маскирует значение одноимённого заголовка, сохраняя схему.
//
//	"Bearer eyJ..." -> "Bearer [REDACTED_TOKEN]"
//	"Basic abc"     -> "Basic [REDACTED_TOKEN]"
//	""              -> ""
func Authorization(v string) string {
	if v == "" {
		return ""
	}

	scheme, _, ok := strings.Cut(v, " ")
	if !ok {
		return Token()
	}

	return scheme + " " + Token()
}
