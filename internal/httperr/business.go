package httperr

import "errors"

// BusinessError identifica falhas de regra de negócio por código.
// Detail carrega o termo que a mensagem ao usuário interpola (nome do
// barbeiro, da instância etc.).
type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessDetail(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
