package curriculo

import (
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

func historicoCodigo(s string) historico.CodigoDisciplina {
	return historico.CodigoDisciplina(s)
}

func chave(codigo string, versao int) historico.Chave {
	return historico.Chave{Codigo: historico.CodigoDisciplina(codigo), Versao: versao}
}

func codigos(lista ...string) []historico.CodigoDisciplina {
	out := make([]historico.CodigoDisciplina, 0, len(lista))
	for _, s := range lista {
		out = append(out, historico.CodigoDisciplina(s))
	}
	return out
}
