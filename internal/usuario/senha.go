package usuario

import "golang.org/x/crypto/bcrypt"

// hashSenha retorna o hash bcrypt da senha em texto
func hashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// verificarSenha compara hash bcrypt com a senha em texto e retorna true se bater
func verificarSenha(hash, senha string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha))
	return err == nil
}
