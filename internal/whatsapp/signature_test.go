package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"object":"whatsapp_business_account"}`)
	sig := ComputeSignature(body, "app-secret")

	assert.True(t, VerifySignature(body, "app-secret", sig))
	assert.False(t, VerifySignature(body, "other-secret", sig))
	assert.False(t, VerifySignature([]byte(`{}`), "app-secret", sig))
	assert.False(t, VerifySignature(body, "app-secret", ""))
	assert.False(t, VerifySignature(body, "", sig))
	assert.False(t, VerifySignature(body, "app-secret", "sha256=zz"))
	assert.False(t, VerifySignature(body, "app-secret", sig[len("sha256="):]))
}
