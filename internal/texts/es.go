package texts

// Spanish overlay. Keys missing here fall back to English at render time.
var spanish = map[string]string{
	"welcome": `🌾 *¡Bienvenido a AgroMatch!* 🌾

Conectamos trabajadores agrícolas con empleadores.

Por favor seleccione su rol:
1️⃣ Busco trabajo agrícola (Trabajador)
2️⃣ Estoy contratando (Dueño de granja)

Responda con 1 o 2`,

	"role_retry": "Por favor responda con 1 (Trabajador) o 2 (Dueño de granja)",

	"worker_menu": `🌾 *Menú del Trabajador*

1️⃣ Ver trabajos disponibles
2️⃣ Actualizar mis preferencias
3️⃣ Ver mis solicitudes
4️⃣ Chatear con el dueño
5️⃣ Ayuda

Responda con el número de su elección`,

	"owner_menu": `🏡 *Menú del Dueño*

1️⃣ Publicar un trabajo
2️⃣ Ver mis publicaciones
3️⃣ Ver solicitantes
4️⃣ Chatear con solicitantes
5️⃣ Ayuda

Responda con el número de su elección`,

	"help": `❓ *Ayuda de AgroMatch*

• Escriba 'menu' para volver al menú principal
• Escriba 'ayuda' para ver este mensaje
• Escriba 'english' o 'español' para cambiar idioma

Soporte: support@agromatch.example`,

	"fallback": "No entendí eso. Intente de nuevo o escriba 'menu' para el menú principal.",

	"language_set": "✅ Idioma cambiado a Español",

	"worker_reg_start": `✅ ¡Excelente! Vamos a registrarlo.

📝 *Paso 1 de 3: Información Personal*

¿Cuál es su nombre completo?`,

	"worker_reg_location": `¡Mucho gusto, {name}! 👋

📍 *Paso 2 de 3: Ubicación*

¿Cuál es su ubicación? (Ciudad o área donde busca trabajo)`,

	"worker_reg_id": `📸 *Paso 3 de 3: Verificación de Identidad*

Por favor envíe una foto de su identificación o licencia de conducir.

Esto nos ayuda a mantener AgroMatch seguro para todos.`,

	"worker_id_missing": "Por favor envíe una foto de su identificación.",

	"work_type_retry": `Por favor seleccione opciones válidas (1-6).

Responda con números separados por comas (ej: 1,2,3):`,

	"distance_retry": `Por favor seleccione una opción válida (1-4).

Responda con 1, 2, 3, o 4:`,

	"hours_retry": "Por favor responda con 1, 2, o 3",

	"profile_complete": "✅ *¡Perfil Completo!*",

	"no_jobs": "No hay trabajos que coincidan por ahora. Le avisaremos cuando se publiquen nuevos trabajos que coincidan con sus preferencias.",

	"found_jobs": `¡Encontramos {count} trabajo(s) para usted!
(Ordenados por mejor pago)`,

	"select_job": `*Seleccione un trabajo para ver detalles y aplicar:*

Responda con el número del trabajo (1-{max}) o escriba 'menu' para volver.`,

	"job_not_found": "Trabajo no encontrado. Intente de nuevo o escriba 'menu'.",

	"applied": `✅ *¡Solicitud Enviada!*

El dueño de la granja ha sido notificado y lo contactará pronto.

*Detalles del Trabajo:*
• Puesto: {work_type}
• Granja: {farm_name}
• Pago: {pay}
• ID de Match: {match_id}`,

	"chat_sent":  "✅ ¡Mensaje enviado!",
	"chat_ended": "Chat terminado.",
}
