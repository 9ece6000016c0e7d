package usuario

import "testing"

func TestSenhaHashEVerificacao(t *testing.T) {
	hash, err := hashSenha("s3nh4-forte")
	if err != nil {
		t.Fatalf("hashSenha: %v", err)
	}
	if hash == "s3nh4-forte" {
		t.Fatal("hash não pode ser a senha em texto")
	}

	if !verificarSenha(hash, "s3nh4-forte") {
		t.Fatal("senha correta deveria verificar")
	}
	if verificarSenha(hash, "errada") {
		t.Fatal("senha errada não deveria verificar")
	}
}
