package searching

import "errors"

// ErrSuperseded indica que um termo mais novo substituiu esta consulta; o
// resultado deve ser descartado em silêncio
var ErrSuperseded = errors.New("consulta substituída por um termo mais recente")
